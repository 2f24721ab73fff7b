package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/appsearch/core"
	"github.com/poiesic/appsearch/storage"
)

// UpdateTask is a catalog mutation that can fail.
// A failed update leaves the in-memory catalog unchanged.
type UpdateTask interface {
	Apply(ctx context.Context, apps *AllAppsList) error
}

// Update enqueues t and waits until it has been applied.
func Update(ctx context.Context, q Queue, t UpdateTask) error {
	errCh := make(chan error, 1)
	err := q.Enqueue(TaskFunc(func(ctx context.Context, apps *AllAppsList) {
		defer func() {
			if r := recover(); r != nil {
				errCh <- fmt.Errorf("%w: %v", ErrTaskFailed, r)
			}
		}()
		errCh <- t.Apply(ctx, apps)
	}))
	if err != nil {
		return err
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit enqueues t without waiting. Failures are logged to logger.
func Submit(q Queue, t UpdateTask, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	return q.Enqueue(TaskFunc(func(ctx context.Context, apps *AllAppsList) {
		if err := t.Apply(ctx, apps); err != nil {
			logger.Error("catalog update failed", "task", fmt.Sprintf("%T", t), "err", err)
		}
	}))
}

// AddAppsTask appends apps to the catalog.
// When Repository is set the apps are stored first and receive their
// persisted ordinals.
type AddAppsTask struct {
	Repository storage.AppRepository
	Apps       []*core.AppInfo
}

// Apply implements UpdateTask.
func (t *AddAppsTask) Apply(ctx context.Context, apps *AllAppsList) error {
	for _, app := range t.Apps {
		if err := core.ValidateAppInfo(app); err != nil {
			return err
		}
	}

	added := t.Apps
	if t.Repository != nil {
		var err error
		added, err = t.Repository.AddApps(ctx, t.Apps...)
		if err != nil {
			return fmt.Errorf("failed to store apps: %w", err)
		}
	} else {
		for _, app := range added {
			if app.Id == 0 {
				app.Id = core.IDFromComponent(app.Package, app.Activity)
			}
		}
	}

	apps.Add(added...)
	return nil
}

// RemovePackageTask removes every app of Package from the catalog.
type RemovePackageTask struct {
	Repository storage.AppRepository
	Package    string

	// Removed holds the removed apps once the task has been applied.
	Removed []*core.AppInfo
}

// Apply implements UpdateTask.
func (t *RemovePackageTask) Apply(ctx context.Context, apps *AllAppsList) error {
	if t.Package == "" {
		return core.ErrEmptyPackage
	}
	if t.Repository != nil {
		if _, err := t.Repository.DeletePackage(ctx, t.Package); err != nil {
			return fmt.Errorf("failed to delete package %s: %w", t.Package, err)
		}
	}
	t.Removed = apps.RemovePackage(t.Package)
	return nil
}

// UpdateTitleTask changes the display title of one app.
type UpdateTitleTask struct {
	Repository storage.AppRepository
	Id         core.ID
	Title      string
}

// Apply implements UpdateTask.
func (t *UpdateTitleTask) Apply(ctx context.Context, apps *AllAppsList) error {
	current := apps.Get(t.Id)
	if current == nil {
		return fmt.Errorf("%w: id %d", ErrAppNotFound, t.Id)
	}

	if t.Repository != nil {
		updated := *current
		updated.Title = t.Title
		if _, err := t.Repository.UpdateApps(ctx, &updated); err != nil {
			return fmt.Errorf("failed to store title: %w", err)
		}
	}

	apps.UpdateTitle(t.Id, t.Title)
	return nil
}

// ReloadTask replaces the catalog with the contents of a repository.
type ReloadTask struct {
	Repository storage.AppRepository
	BatchSize  int
}

// Apply implements UpdateTask.
func (t *ReloadTask) Apply(ctx context.Context, apps *AllAppsList) error {
	if t.Repository == nil {
		return ErrRepositoryRequired
	}
	loaded, err := NewLoader(t.Repository, t.BatchSize).LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload catalog: %w", err)
	}
	apps.Replace(loaded)
	return nil
}

// ClearTask empties the catalog. Storage is not touched.
type ClearTask struct{}

// Apply implements UpdateTask.
func (ClearTask) Apply(_ context.Context, apps *AllAppsList) error {
	apps.Clear()
	return nil
}
