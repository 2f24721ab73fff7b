package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/appsearch/core"
)

// Task is a unit of work run against the catalog on the model worker.
type Task interface {
	Execute(ctx context.Context, apps *AllAppsList)
}

// TaskFunc adapts a function to the Task interface.
type TaskFunc func(ctx context.Context, apps *AllAppsList)

// Execute calls f.
func (f TaskFunc) Execute(ctx context.Context, apps *AllAppsList) {
	f(ctx, apps)
}

// Queue accepts tasks for serialized execution against the catalog.
type Queue interface {
	Enqueue(task Task) error
}

// Model owns the apps catalog and runs tasks against it one at a time,
// in the order they were enqueued.
type Model struct {
	apps   *AllAppsList
	ctx    context.Context
	logger *slog.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Task
	closed bool

	closeOnce sync.Once
	done      chan struct{}
}

var _ Queue = (*Model)(nil)

// Option configures a Model.
type Option func(*Model) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithApps seeds the model with an existing catalog.
func WithApps(apps *AllAppsList) Option {
	return func(m *Model) error {
		if apps != nil {
			m.apps = apps
		}
		return nil
	}
}

// NewModel creates a model and starts its worker.
func NewModel(opts ...Option) (*Model, error) {
	m := &Model{
		apps:   NewAllAppsList(),
		ctx:    context.Background(),
		logger: slog.Default(),
		done:   make(chan struct{}),
	}
	m.cond = sync.NewCond(&m.mu)

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	go m.run()
	return m, nil
}

// Enqueue schedules task to run after every previously enqueued task.
// It never blocks on the worker.
func (m *Model) Enqueue(task Task) error {
	if task == nil {
		return ErrNilTask
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrModelClosed
	}
	m.queue = append(m.queue, task)
	m.cond.Signal()
	return nil
}

// Pending returns the number of tasks waiting to run.
func (m *Model) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Close stops accepting tasks, runs the ones already queued and waits for
// the worker to exit. It must not be called from inside a task.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.cond.Broadcast()
		m.mu.Unlock()
	})
	<-m.done
}

func (m *Model) run() {
	defer close(m.done)
	for {
		m.mu.Lock()
		for len(m.queue) == 0 && !m.closed {
			m.cond.Wait()
		}
		if len(m.queue) == 0 {
			m.mu.Unlock()
			return
		}
		task := m.queue[0]
		m.queue[0] = nil
		m.queue = m.queue[1:]
		m.mu.Unlock()

		m.execute(task)
	}
}

func (m *Model) execute(task Task) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("catalog task panicked", "task", fmt.Sprintf("%T", task), "panic", r)
		}
	}()
	task.Execute(m.ctx, m.apps)
}

// WithSnapshot runs fn against the catalog on the model worker and returns
// its result. fn sees the catalog as left by every task enqueued before it.
func WithSnapshot[R any](ctx context.Context, q Queue, fn func(apps []*core.AppInfo) R) (R, error) {
	var (
		zero   R
		result R
		ok     bool
	)
	done := make(chan struct{})

	err := q.Enqueue(TaskFunc(func(_ context.Context, apps *AllAppsList) {
		defer close(done)
		result = fn(apps.Data())
		ok = true
	}))
	if err != nil {
		return zero, err
	}

	select {
	case <-done:
		if !ok {
			return zero, ErrTaskFailed
		}
		return result, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
