package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clientportal/internal/model"
)

type UpdateRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUpdateRepository(db *pgxpool.Pool, logger *zap.Logger) *UpdateRepository {
	return &UpdateRepository{db: db, logger: logger}
}

// ListByProject returns a project's updates, newest first.
func (r *UpdateRepository) ListByProject(ctx context.Context, projectID model.FlexID) ([]model.Update, error) {
	numID, err := numericID(projectID)
	if err != nil {
		return nil, pgx.ErrNoRows
	}

	query := `
        SELECT id, project_id, date, content
        FROM updates
        WHERE project_id = $1
        ORDER BY date DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query, numID)
	if err != nil {
		r.logger.Error("Failed to list updates",
			zap.String("project_id", projectID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	updates := make([]model.Update, 0)
	for rows.Next() {
		var u model.Update
		var id, pid int
		var date time.Time
		if err := rows.Scan(&id, &pid, &date, &u.Content); err != nil {
			return nil, err
		}
		u.ID = model.FlexID(strconv.Itoa(id))
		u.ProjectID = model.FlexID(strconv.Itoa(pid))
		u.Date = date.Format("2006-01-02")
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

// Insert appends an update to a project. Updates are append-only.
func (r *UpdateRepository) Insert(ctx context.Context, u *model.Update) (model.FlexID, error) {
	numProject, err := numericID(u.ProjectID)
	if err != nil {
		return "", pgx.ErrNoRows
	}

	query := `
        INSERT INTO updates (project_id, date, content)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	var id int
	if err := r.db.QueryRow(ctx, query, numProject, u.Date, u.Content).Scan(&id); err != nil {
		r.logger.Error("Failed to insert update", zap.Error(err))
		return "", err
	}

	r.logger.Info("Update inserted successfully",
		zap.Int("id", id),
		zap.String("project_id", u.ProjectID.String()),
	)
	return model.FlexID(strconv.Itoa(id)), nil
}
