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

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

// ListByProject returns a project's tasks in their stored order. Row order
// is the workflow sequence chosen by the project owner, so no date sort.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID model.FlexID) ([]model.Task, error) {
	numID, err := numericID(projectID)
	if err != nil {
		return nil, pgx.ErrNoRows
	}

	query := `
        SELECT id, project_id, name, status, progress, completed, start_date, end_date
        FROM tasks
        WHERE project_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, numID)
	if err != nil {
		r.logger.Error("Failed to list tasks",
			zap.String("project_id", projectID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		var id, pid int
		var startDate, endDate *time.Time
		if err := rows.Scan(&id, &pid, &t.Name, &t.Status, &t.Progress, &t.Completed, &startDate, &endDate); err != nil {
			return nil, err
		}
		t.ID = model.FlexID(strconv.Itoa(id))
		t.ProjectID = model.FlexID(strconv.Itoa(pid))
		t.StartDate = formatDate(startDate)
		t.EndDate = formatDate(endDate)
		t.Normalize()
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Insert creates a task under a project.
func (r *TaskRepository) Insert(ctx context.Context, t *model.Task) (model.FlexID, error) {
	numProject, err := numericID(t.ProjectID)
	if err != nil {
		return "", pgx.ErrNoRows
	}

	t.Normalize()

	query := `
        INSERT INTO tasks (project_id, name, status, progress, completed, start_date, end_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	var id int
	err = r.db.QueryRow(ctx, query,
		numProject,
		t.Name,
		t.Status,
		t.Progress,
		t.Completed,
		nullableDate(t.StartDate),
		nullableDate(t.EndDate),
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert task", zap.Error(err))
		return "", err
	}

	r.logger.Info("Task inserted successfully",
		zap.Int("id", id),
		zap.String("project_id", t.ProjectID.String()),
	)
	return model.FlexID(strconv.Itoa(id)), nil
}

// MarkCompleted sets a task to completed with full progress.
func (r *TaskRepository) MarkCompleted(ctx context.Context, taskID model.FlexID) error {
	numID, err := numericID(taskID)
	if err != nil {
		return pgx.ErrNoRows
	}

	query := `
        UPDATE tasks
        SET status = 'completed', completed = TRUE, progress = 100
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, numID)
	if err != nil {
		r.logger.Error("Failed to mark task completed",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	r.logger.Info("Task marked completed", zap.String("task_id", taskID.String()))
	return nil
}

// GetProjectIDForTask resolves which project owns a task.
func (r *TaskRepository) GetProjectIDForTask(ctx context.Context, taskID model.FlexID) (model.FlexID, error) {
	numID, err := numericID(taskID)
	if err != nil {
		return "", pgx.ErrNoRows
	}

	var projectID int
	query := `SELECT project_id FROM tasks WHERE id = $1`
	if err := r.db.QueryRow(ctx, query, numID).Scan(&projectID); err != nil {
		return "", err
	}
	return model.FlexID(strconv.Itoa(projectID)), nil
}
