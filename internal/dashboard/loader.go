package dashboard

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"clientportal/internal/model"
)

// Loader serializes project selection for one dashboard session.
// Selecting a new project while a previous detail load is in flight cancels
// the old load; a result arriving for a project no longer selected is
// discarded instead of applied (last-selection-wins).
type Loader struct {
	assembler *Assembler
	logger    *zap.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	selected   model.FlexID
	current    *View
}

func NewLoader(assembler *Assembler, logger *zap.Logger) *Loader {
	return &Loader{
		assembler: assembler,
		logger:    logger,
	}
}

// Select starts loading the dashboard view for the given project. The
// returned channel yields the view once, or closes without a value when
// the selection was superseded before the load finished.
func (l *Loader) Select(ctx context.Context, projects []model.Project, id model.FlexID, user *model.User) <-chan *View {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.generation++
	gen := l.generation
	l.selected = id
	l.mu.Unlock()

	done := make(chan *View, 1)

	go func() {
		defer close(done)
		view := l.assembler.Assemble(loadCtx, projects, id, user)

		l.mu.Lock()
		defer l.mu.Unlock()
		if gen != l.generation {
			l.logger.Debug("Discarding stale dashboard load",
				zap.String("project_id", id.String()),
			)
			return
		}
		l.current = view
		done <- view
	}()

	return done
}

// Current returns the most recently applied view and its project id.
func (l *Loader) Current() (*View, model.FlexID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.selected
}
