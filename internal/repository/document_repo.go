package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clientportal/internal/model"
)

type DocumentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDocumentRepository(db *pgxpool.Pool, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{db: db, logger: logger}
}

// ListByProject returns a project's document metadata. The portal stores
// names, type tags and URLs only; file bytes live elsewhere.
func (r *DocumentRepository) ListByProject(ctx context.Context, projectID model.FlexID) ([]model.Document, error) {
	numID, err := numericID(projectID)
	if err != nil {
		return nil, pgx.ErrNoRows
	}

	query := `
        SELECT id, name, type, size, url
        FROM documents
        WHERE project_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, numID)
	if err != nil {
		r.logger.Error("Failed to list documents",
			zap.String("project_id", projectID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	documents := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		var id int
		if err := rows.Scan(&id, &d.Name, &d.Type, &d.Size, &d.URL); err != nil {
			return nil, err
		}
		d.ID = model.FlexID(strconv.Itoa(id))
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

// Insert records document metadata under a project.
func (r *DocumentRepository) Insert(ctx context.Context, projectID model.FlexID, d *model.Document) (model.FlexID, error) {
	numProject, err := numericID(projectID)
	if err != nil {
		return "", pgx.ErrNoRows
	}

	query := `
        INSERT INTO documents (project_id, name, type, size, url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	var id int
	if err := r.db.QueryRow(ctx, query, numProject, d.Name, d.Type, d.Size, d.URL).Scan(&id); err != nil {
		r.logger.Error("Failed to insert document", zap.Error(err))
		return "", err
	}

	r.logger.Info("Document inserted successfully",
		zap.Int("id", id),
		zap.String("project_id", projectID.String()),
	)
	return model.FlexID(strconv.Itoa(id)), nil
}
