package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clientportal/internal/model"
)

type Model3DRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewModel3DRepository(db *pgxpool.Pool, logger *zap.Logger) *Model3DRepository {
	return &Model3DRepository{db: db, logger: logger}
}

// GetByProject returns the project's 3D preview metadata, or pgx.ErrNoRows
// when the project has none.
func (r *Model3DRepository) GetByProject(ctx context.Context, projectID model.FlexID) (*model.Model3D, error) {
	numID, err := numericID(projectID)
	if err != nil {
		return nil, pgx.ErrNoRows
	}

	query := `
        SELECT id, project_id, name, url
        FROM models3d
        WHERE project_id = $1
        ORDER BY id DESC
        LIMIT 1
    `
	var m model.Model3D
	var id, pid int
	if err := r.db.QueryRow(ctx, query, numID).Scan(&id, &pid, &m.Name, &m.URL); err != nil {
		return nil, err
	}
	m.ID = model.FlexID(strconv.Itoa(id))
	m.ProjectID = model.FlexID(strconv.Itoa(pid))
	return &m, nil
}

// Insert records 3D model metadata for a project.
func (r *Model3DRepository) Insert(ctx context.Context, m *model.Model3D) (model.FlexID, error) {
	numProject, err := numericID(m.ProjectID)
	if err != nil {
		return "", pgx.ErrNoRows
	}

	query := `
        INSERT INTO models3d (project_id, name, url)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	var id int
	if err := r.db.QueryRow(ctx, query, numProject, m.Name, m.URL).Scan(&id); err != nil {
		r.logger.Error("Failed to insert 3d model", zap.Error(err))
		return "", err
	}

	r.logger.Info("3D model inserted successfully",
		zap.Int("id", id),
		zap.String("project_id", m.ProjectID.String()),
	)
	return model.FlexID(strconv.Itoa(id)), nil
}
