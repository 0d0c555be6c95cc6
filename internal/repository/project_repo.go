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

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all projects with their assigned users attached. Tasks,
// updates and documents are loaded separately per project.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	query := `
        SELECT id, name, client, description, start_date, end_date, progress, status
        FROM projects
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list projects", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	index := make(map[model.FlexID]int)

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			r.logger.Error("Failed to scan project", zap.Error(err))
			return nil, err
		}
		index[p.ID] = len(projects)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachAssignedUsers(ctx, projects, index); err != nil {
		return nil, err
	}

	return projects, nil
}

// GetByID returns one project with its assigned users.
func (r *ProjectRepository) GetByID(ctx context.Context, id model.FlexID) (*model.Project, error) {
	numID, err := numericID(id)
	if err != nil {
		return nil, pgx.ErrNoRows
	}

	query := `
        SELECT id, name, client, description, start_date, end_date, progress, status
        FROM projects
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, numID)
	p, err := scanProject(row)
	if err != nil {
		if err != pgx.ErrNoRows {
			r.logger.Error("Failed to get project",
				zap.String("project_id", id.String()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	projects := []model.Project{p}
	index := map[model.FlexID]int{p.ID: 0}
	if err := r.attachAssignedUsers(ctx, projects, index); err != nil {
		return nil, err
	}

	return &projects[0], nil
}

// Insert creates a project and returns its id.
func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) (model.FlexID, error) {
	r.logger.Debug("Inserting project",
		zap.String("name", p.Name),
		zap.String("client", p.Client),
	)

	query := `
        INSERT INTO projects (name, client, description, start_date, end_date, progress, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	progressValue := 0
	if p.Progress != nil {
		progressValue = *p.Progress
	}

	var id int
	err := r.db.QueryRow(ctx, query,
		p.Name,
		p.Client,
		p.Description,
		nullableDate(p.StartDate),
		nullableDate(p.EndDate),
		progressValue,
		p.Status,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return "", err
	}

	r.logger.Info("Project inserted successfully",
		zap.Int("id", id),
		zap.String("name", p.Name),
	)
	return model.FlexID(strconv.Itoa(id)), nil
}

// UpdateProgress sets a project's stored progress and status.
func (r *ProjectRepository) UpdateProgress(ctx context.Context, id model.FlexID, progressPct int, status string) error {
	numID, err := numericID(id)
	if err != nil {
		return pgx.ErrNoRows
	}

	// An empty status leaves the stored one untouched.
	query := `UPDATE projects SET progress = $1, status = COALESCE(NULLIF($2, ''), status) WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, progressPct, status, numID)
	if err != nil {
		r.logger.Error("Failed to update project progress",
			zap.String("project_id", id.String()),
			zap.Error(err),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	r.logger.Info("Project progress updated",
		zap.String("project_id", id.String()),
		zap.Int("progress", progressPct),
	)
	return nil
}

// AssignUser adds a user to a project's assigned-users set.
func (r *ProjectRepository) AssignUser(ctx context.Context, projectID, userID model.FlexID) error {
	numProject, err := numericID(projectID)
	if err != nil {
		return pgx.ErrNoRows
	}
	numUser, err := numericID(userID)
	if err != nil {
		return pgx.ErrNoRows
	}

	query := `
        INSERT INTO project_users (project_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	if _, err := r.db.Exec(ctx, query, numProject, numUser); err != nil {
		r.logger.Error("Failed to assign user to project",
			zap.String("project_id", projectID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("User assigned to project",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

func (r *ProjectRepository) attachAssignedUsers(ctx context.Context, projects []model.Project, index map[model.FlexID]int) error {
	if len(projects) == 0 {
		return nil
	}

	query := `
        SELECT pu.project_id, u.id, u.email, u.name, u.role
        FROM project_users pu
        JOIN users u ON u.id = pu.user_id
        ORDER BY pu.project_id, u.id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list project assignments", zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var projectID, userID int
		var u model.User
		if err := rows.Scan(&projectID, &userID, &u.Email, &u.Name, &u.Role); err != nil {
			return err
		}
		u.ID = model.FlexID(strconv.Itoa(userID))

		key := model.FlexID(strconv.Itoa(projectID))
		if i, ok := index[key]; ok {
			projects[i].Users = append(projects[i].Users, u)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (model.Project, error) {
	var p model.Project
	var id int
	var startDate, endDate *time.Time
	var progressValue *int

	if err := row.Scan(&id, &p.Name, &p.Client, &p.Description, &startDate, &endDate, &progressValue, &p.Status); err != nil {
		return model.Project{}, err
	}

	p.ID = model.FlexID(strconv.Itoa(id))
	p.StartDate = formatDate(startDate)
	p.EndDate = formatDate(endDate)
	p.Progress = progressValue
	return p, nil
}

func numericID(id model.FlexID) (int, error) {
	return strconv.Atoi(id.String())
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func nullableDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
