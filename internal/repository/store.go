package repository

import (
	"context"

	"clientportal/internal/model"
)

// Store bundles the per-resource repositories behind the read interface the
// dashboard assembler consumes.
type Store struct {
	Projects  *ProjectRepository
	Tasks     *TaskRepository
	Updates   *UpdateRepository
	Documents *DocumentRepository
}

func NewStore(projects *ProjectRepository, tasks *TaskRepository, updates *UpdateRepository, documents *DocumentRepository) *Store {
	return &Store{
		Projects:  projects,
		Tasks:     tasks,
		Updates:   updates,
		Documents: documents,
	}
}

func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.Projects.List(ctx)
}

func (s *Store) GetProjectTasks(ctx context.Context, projectID model.FlexID) ([]model.Task, error) {
	return s.Tasks.ListByProject(ctx, projectID)
}

func (s *Store) GetProjectUpdates(ctx context.Context, projectID model.FlexID) ([]model.Update, error) {
	return s.Updates.ListByProject(ctx, projectID)
}

func (s *Store) GetProjectDocuments(ctx context.Context, projectID model.FlexID) ([]model.Document, error) {
	return s.Documents.ListByProject(ctx, projectID)
}
