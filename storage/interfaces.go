package storage

import (
	"context"

	"github.com/poiesic/appsearch/core"
)

// AppRepository persists the apps catalog.
// Implementations must be thread-safe and support concurrent access.
type AppRepository interface {
	// AddApps validates and stores one or more apps.
	// Apps with Id=0 receive the ID derived from their component name.
	// Each app is assigned the next catalog ordinal.
	// Returns ErrDuplicateKey if an app with the same ID already exists.
	AddApps(ctx context.Context, apps ...*core.AppInfo) ([]*core.AppInfo, error)

	// UpdateApps replaces stored apps. The catalog ordinal is preserved.
	// Returns ErrNotFound if any app doesn't exist.
	UpdateApps(ctx context.Context, apps ...*core.AppInfo) ([]*core.AppInfo, error)

	// DeleteApps removes apps by their IDs.
	// Returns ErrNotFound if any app doesn't exist.
	DeleteApps(ctx context.Context, ids ...core.ID) error

	// DeletePackage removes every app belonging to pkg and returns their IDs.
	// Deleting an unknown package is not an error.
	DeletePackage(ctx context.Context, pkg string) ([]core.ID, error)

	// GetApp retrieves a single app by ID.
	// Returns ErrNotFound if the app doesn't exist.
	GetApp(ctx context.Context, id core.ID) (*core.AppInfo, error)

	// GetApps retrieves multiple apps by their IDs.
	// Returns only the apps that exist (no error for missing apps).
	GetApps(ctx context.Context, ids ...core.ID) ([]*core.AppInfo, error)

	// ListApps returns every app in catalog order.
	ListApps(ctx context.Context) ([]*core.AppInfo, error)

	// ScanApps returns up to limit apps whose ordinal is greater than
	// afterOrder, in catalog order. A limit <= 0 returns all of them.
	ScanApps(ctx context.Context, afterOrder uint64, limit int) ([]*core.AppInfo, error)

	// Count returns the number of stored apps.
	Count(ctx context.Context) (int, error)

	// Close releases repository resources. It does not close the backend.
	Close() error
}
