package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"clientportal/internal/model"
	"clientportal/internal/progress"
	"clientportal/internal/timeline"
	"clientportal/internal/visibility"
	"clientportal/pkg/logger"
	"clientportal/pkg/metrics"
)

// ProjectRepository is the read side of the portal's backing store. Each
// method fails with a transport error distinguishable from an empty result.
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProjectTasks(ctx context.Context, projectID model.FlexID) ([]model.Task, error)
	GetProjectUpdates(ctx context.Context, projectID model.FlexID) ([]model.Update, error)
	GetProjectDocuments(ctx context.Context, projectID model.FlexID) ([]model.Document, error)
}

// IdentityProvider resolves the authenticated user. Returns nil when no
// user is authenticated.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (*model.User, error)
}

// View is the assembled dashboard consumed by the UI layer.
type View struct {
	ProgressPercent int              `json:"progress_percent"`
	GanttRows       []timeline.Row   `json:"gantt_rows"`
	Tasks           []model.Task     `json:"tasks"`
	Updates         []model.Update   `json:"updates"`
	Documents       []model.Document `json:"documents"`
	VisibleProjects []model.Project  `json:"visible_projects"`
}

type Assembler struct {
	repo     ProjectRepository
	identity IdentityProvider
	logger   *zap.Logger
}

func NewAssembler(repo ProjectRepository, identity IdentityProvider, logger *zap.Logger) *Assembler {
	return &Assembler{
		repo:     repo,
		identity: identity,
		logger:   logger,
	}
}

// VisibleProjects fetches the full project list and filters it for the
// current user. A repository failure is recoverable; an empty visible set
// is the normal "no projects assigned" outcome, not an error.
func (a *Assembler) VisibleProjects(ctx context.Context) ([]model.Project, *model.User, error) {
	user, err := a.identity.CurrentUser(ctx)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	projects, err := a.repo.ListProjects(ctx)
	if err != nil {
		metrics.RecordRepositoryFetch("projects", "error", time.Since(start))
		logger.WithTrace(ctx, a.logger).Error("Failed to list projects", zap.Error(err))
		return nil, user, &RepositoryError{Resource: "projects", Err: err}
	}
	metrics.RecordRepositoryFetch("projects", "ok", time.Since(start))

	return visibility.Visible(projects, user), user, nil
}

// detail holds the three independently fetched sub-resources of a project.
type detail struct {
	tasks     []model.Task
	updates   []model.Update
	documents []model.Document
}

// loadDetail fetches tasks, updates and documents concurrently. Each fetch
// is isolated: a failure falls back to whatever the project summary already
// embeds, so the dashboard always renders something.
func (a *Assembler) loadDetail(ctx context.Context, p *model.Project) detail {
	d := detail{
		tasks:     p.Tasks,
		updates:   p.Updates,
		documents: p.Documents,
	}
	log := logger.WithTrace(ctx, a.logger)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		start := time.Now()
		tasks, err := a.repo.GetProjectTasks(ctx, p.ID)
		if err != nil {
			metrics.RecordRepositoryFetch("tasks", "error", time.Since(start))
			metrics.DetailFallbackCount.WithLabelValues("tasks").Inc()
			log.Warn("Task fetch failed, using embedded tasks",
				zap.String("project_id", p.ID.String()),
				zap.Error(err),
			)
			return
		}
		metrics.RecordRepositoryFetch("tasks", "ok", time.Since(start))
		d.tasks = tasks
	}()

	go func() {
		defer wg.Done()
		start := time.Now()
		updates, err := a.repo.GetProjectUpdates(ctx, p.ID)
		if err != nil {
			metrics.RecordRepositoryFetch("updates", "error", time.Since(start))
			metrics.DetailFallbackCount.WithLabelValues("updates").Inc()
			log.Warn("Update fetch failed, using embedded updates",
				zap.String("project_id", p.ID.String()),
				zap.Error(err),
			)
			return
		}
		metrics.RecordRepositoryFetch("updates", "ok", time.Since(start))
		d.updates = updates
	}()

	go func() {
		defer wg.Done()
		start := time.Now()
		documents, err := a.repo.GetProjectDocuments(ctx, p.ID)
		if err != nil {
			metrics.RecordRepositoryFetch("documents", "error", time.Since(start))
			metrics.DetailFallbackCount.WithLabelValues("documents").Inc()
			log.Warn("Document fetch failed, using embedded documents",
				zap.String("project_id", p.ID.String()),
				zap.Error(err),
			)
			return
		}
		metrics.RecordRepositoryFetch("documents", "ok", time.Since(start))
		d.documents = documents
	}()

	wg.Wait()
	return d
}

// Assemble produces the dashboard view for the selected project out of an
// already-filtered project list. The selected project must be one of the
// visible projects; an unknown id yields a view with the project lists
// empty but the visible set intact.
func (a *Assembler) Assemble(ctx context.Context, projects []model.Project, selectedID model.FlexID, user *model.User) *View {
	view := &View{VisibleProjects: projects}

	var selected *model.Project
	for i := range projects {
		if projects[i].ID.Equal(selectedID) {
			selected = &projects[i]
			break
		}
	}
	if selected == nil {
		return view
	}

	d := a.loadDetail(ctx, selected)

	tasks := progress.NormalizeTasks(d.tasks)

	view.Tasks = tasks
	view.Updates = d.updates
	view.Documents = d.documents
	view.GanttRows = timeline.Layout(tasks, nil)

	// Prefer the server's rollup when stored; recompute otherwise.
	withTasks := *selected
	withTasks.Tasks = tasks
	view.ProgressPercent = progress.ProjectProgress(&withTasks, true)

	return view
}

// AssembleForUser runs the whole dashboard load: resolve the user, filter
// projects, and assemble the view for the selected project.
func (a *Assembler) AssembleForUser(ctx context.Context, selectedID model.FlexID) (*View, error) {
	start := time.Now()

	projects, user, err := a.VisibleProjects(ctx)
	if err != nil {
		metrics.RecordDashboardAssemble("error", time.Since(start))
		return nil, err
	}

	view := a.Assemble(ctx, projects, selectedID, user)
	metrics.RecordDashboardAssemble("ok", time.Since(start))
	return view, nil
}
