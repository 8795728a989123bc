package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sumire/portfolio/internal/domain"
	"github.com/sumire/portfolio/internal/metrics"
)

// LoadState is the lifecycle of a Loader.
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateSuccess
	StateError
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Resolved reports whether the state is terminal.
func (s LoadState) Resolved() bool {
	return s == StateSuccess || s == StateError
}

// Snapshot is what a view renders for a loader region.
type Snapshot struct {
	State    LoadState
	Projects []domain.Project
}

// Loader performs one project table read for one page region.
//
// The first call to Load issues the read; every later call waits for and
// returns that same result. A failed read is logged and resolves with no
// projects.
type Loader struct {
	name    string
	source  ProjectSource
	query   domain.TableQuery
	timeout time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics

	once     sync.Once
	mu       sync.Mutex
	state    LoadState
	projects []domain.Project
}

// Load runs the read if it has not run yet and returns the resolved snapshot.
func (l *Loader) Load(ctx context.Context) Snapshot {
	l.once.Do(func() { l.fetch(ctx) })
	return l.Snapshot()
}

// Snapshot returns the current state without triggering a read.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{State: l.state, Projects: l.projects}
}

func (l *Loader) fetch(ctx context.Context) {
	l.setState(StateLoading, nil)

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	projects, err := l.source.Query(ctx, l.query)
	l.metrics.ObserveFetch(l.name, time.Since(start), err)

	if err != nil {
		l.log.ErrorContext(ctx, "error fetching projects",
			"loader", l.name,
			"table", l.query.Table,
			"error", err,
		)
		l.setState(StateError, []domain.Project{})
		return
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	l.setState(StateSuccess, projects)
}

func (l *Loader) setState(state LoadState, projects []domain.Project) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = state
	l.projects = projects
}
