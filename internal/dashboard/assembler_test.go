package dashboard

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"clientportal/internal/model"
	"clientportal/pkg/rbac"
)

type fakeRepo struct {
	projects []model.Project
	listErr  error

	tasks        map[model.FlexID][]model.Task
	tasksErr     error
	updates      map[model.FlexID][]model.Update
	updatesErr   error
	documents    map[model.FlexID][]model.Document
	documentsErr error

	// When set, GetProjectTasks blocks until the channel closes or the
	// context is cancelled.
	tasksGate chan struct{}
}

func (r *fakeRepo) ListProjects(ctx context.Context) ([]model.Project, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.projects, nil
}

func (r *fakeRepo) GetProjectTasks(ctx context.Context, id model.FlexID) ([]model.Task, error) {
	if r.tasksGate != nil {
		select {
		case <-r.tasksGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.tasksErr != nil {
		return nil, r.tasksErr
	}
	return r.tasks[id], nil
}

func (r *fakeRepo) GetProjectUpdates(ctx context.Context, id model.FlexID) ([]model.Update, error) {
	if r.updatesErr != nil {
		return nil, r.updatesErr
	}
	return r.updates[id], nil
}

func (r *fakeRepo) GetProjectDocuments(ctx context.Context, id model.FlexID) ([]model.Document, error) {
	if r.documentsErr != nil {
		return nil, r.documentsErr
	}
	return r.documents[id], nil
}

type fakeIdentity struct {
	user *model.User
	err  error
}

func (f fakeIdentity) CurrentUser(ctx context.Context) (*model.User, error) {
	return f.user, f.err
}

func pct(v int) *int { return &v }

func clientUser() *model.User {
	return &model.User{ID: "7", Email: "a@x.com", Role: rbac.RoleClient}
}

func assignedProject(id model.FlexID) model.Project {
	return model.Project{
		ID:    id,
		Name:  "Sensor platform",
		Users: []model.User{{ID: "7", Email: "a@x.com"}},
	}
}

func TestVisibleProjectsRepositoryError(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("connection refused")}
	a := NewAssembler(repo, fakeIdentity{user: clientUser()}, zap.NewNop())

	_, _, err := a.VisibleProjects(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) {
		t.Errorf("error type: got %T, want *RepositoryError", err)
	}
}

func TestVisibleProjectsEmptySetIsNotAnError(t *testing.T) {
	repo := &fakeRepo{projects: []model.Project{
		{ID: "1", Users: []model.User{{ID: "99"}}},
	}}
	a := NewAssembler(repo, fakeIdentity{user: clientUser()}, zap.NewNop())

	projects, _, err := a.VisibleProjects(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("visible: got %d, want 0", len(projects))
	}
}

func TestAssembleDetailFetchFailureFallsBack(t *testing.T) {
	// One failing sub-resource must not hide the other two; the failed one
	// falls back to the arrays embedded in the project summary.
	embedded := assignedProject("1")
	embedded.Tasks = []model.Task{
		{ID: "t1", Name: "Embedded task", Status: "pending"},
	}

	repo := &fakeRepo{
		projects: []model.Project{embedded},
		tasksErr: errors.New("tasks endpoint down"),
		updates: map[model.FlexID][]model.Update{
			"1": {{ID: "u1", Date: "2025-01-02", Content: "Kickoff done"}},
		},
		documents: map[model.FlexID][]model.Document{
			"1": {{ID: "d1", Name: "floorplan.pdf", URL: "http://files/floorplan.pdf"}},
		},
	}
	a := NewAssembler(repo, fakeIdentity{user: clientUser()}, zap.NewNop())

	view, err := a.AssembleForUser(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(view.Tasks) != 1 || view.Tasks[0].ID != "t1" {
		t.Errorf("tasks: expected fallback to embedded task, got %v", view.Tasks)
	}
	if len(view.Updates) != 1 {
		t.Errorf("updates: got %d, want 1", len(view.Updates))
	}
	if len(view.Documents) != 1 {
		t.Errorf("documents: got %d, want 1", len(view.Documents))
	}
}

func TestAssembleAllDetailFetchesFailWithNoEmbeddedData(t *testing.T) {
	repo := &fakeRepo{
		projects:     []model.Project{assignedProject("1")},
		tasksErr:     errors.New("down"),
		updatesErr:   errors.New("down"),
		documentsErr: errors.New("down"),
	}
	a := NewAssembler(repo, fakeIdentity{user: clientUser()}, zap.NewNop())

	view, err := a.AssembleForUser(context.Background(), "1")
	if err != nil {
		t.Fatalf("partial failure must not fail the load: %v", err)
	}
	if len(view.Tasks) != 0 || len(view.Updates) != 0 || len(view.Documents) != 0 {
		t.Errorf("expected empty lists, got %d/%d/%d", len(view.Tasks), len(view.Updates), len(view.Documents))
	}
	if len(view.VisibleProjects) != 1 {
		t.Errorf("visible projects: got %d, want 1", len(view.VisibleProjects))
	}
}

func TestAssemblePrefersServerProgress(t *testing.T) {
	p := assignedProject("1")
	p.Progress = pct(35)

	repo := &fakeRepo{
		projects: []model.Project{p},
		tasks: map[model.FlexID][]model.Task{
			"1": {
				{ID: "t1", Progress: pct(100)},
				{ID: "t2", Progress: pct(100)},
			},
		},
	}
	a := NewAssembler(repo, fakeIdentity{user: clientUser()}, zap.NewNop())

	view, err := a.AssembleForUser(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ProgressPercent != 35 {
		t.Errorf("progress: got %d, want server value 35", view.ProgressPercent)
	}
}

func TestAssembleRecomputesProgressWithoutServerValue(t *testing.T) {
	repo := &fakeRepo{
		projects: []model.Project{assignedProject("1")},
		tasks: map[model.FlexID][]model.Task{
			"1": {
				{ID: "t1", Progress: pct(100)},
				{ID: "t2", Progress: pct(60)},
				{ID: "t3", Progress: pct(0)},
			},
		},
	}
	a := NewAssembler(repo, fakeIdentity{user: clientUser()}, zap.NewNop())

	view, err := a.AssembleForUser(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ProgressPercent != 53 {
		t.Errorf("progress: got %d, want 53", view.ProgressPercent)
	}
}

func TestAssembleBuildsGanttRows(t *testing.T) {
	repo := &fakeRepo{
		projects: []model.Project{assignedProject("1")},
		tasks: map[model.FlexID][]model.Task{
			"1": {
				{ID: "t1", StartDate: "2025-01-01", EndDate: "2025-01-05"},
				{ID: "t2"}, // dateless: listed but not drawn
			},
		},
	}
	a := NewAssembler(repo, fakeIdentity{user: clientUser()}, zap.NewNop())

	view, err := a.AssembleForUser(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Tasks) != 2 {
		t.Errorf("task list: got %d, want 2", len(view.Tasks))
	}
	if len(view.GanttRows) != 1 {
		t.Errorf("gantt rows: got %d, want 1", len(view.GanttRows))
	}
}

func TestAssembleUnknownSelectionKeepsVisibleSet(t *testing.T) {
	repo := &fakeRepo{projects: []model.Project{assignedProject("1")}}
	a := NewAssembler(repo, fakeIdentity{user: clientUser()}, zap.NewNop())

	view, err := a.AssembleForUser(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.VisibleProjects) != 1 {
		t.Errorf("visible projects: got %d, want 1", len(view.VisibleProjects))
	}
	if view.Tasks != nil || view.GanttRows != nil {
		t.Errorf("detail lists should be empty for unknown selection")
	}
}

func TestAssembleNormalizesFetchedTasks(t *testing.T) {
	repo := &fakeRepo{
		projects: []model.Project{assignedProject("1")},
		tasks: map[model.FlexID][]model.Task{
			"1": {
				{ID: "t1", Status: "completed", Completed: false},
				{ID: "t2", Status: "in-progress"},
			},
		},
	}
	a := NewAssembler(repo, fakeIdentity{user: clientUser()}, zap.NewNop())

	view, err := a.AssembleForUser(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.Tasks[0].Completed {
		t.Errorf("task t1: completed flag not reconciled with status")
	}
	if view.Tasks[1].Status != model.StatusInProgress {
		t.Errorf("task t2: status spelling not normalized, got %q", view.Tasks[1].Status)
	}
}
