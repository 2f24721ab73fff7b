package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/appsearch/core"
	"github.com/poiesic/appsearch/storage"
)

// AppRepository implements storage.AppRepository for BadgerDB.
type AppRepository struct {
	backend  *Backend
	orderSeq *badger.Sequence
}

var _ storage.AppRepository = (*AppRepository)(nil)

// NewAppRepository creates a new AppRepository.
func NewAppRepository(backend *Backend) (storage.AppRepository, error) {
	return newAppRepository(backend)
}

func newAppRepository(backend *Backend) (*AppRepository, error) {
	orderSeq, err := backend.GetSequence(appOrderSeq)
	if err != nil {
		return nil, err
	}

	return &AppRepository{
		backend:  backend,
		orderSeq: orderSeq,
	}, nil
}

// Close releases the order sequence.
func (r *AppRepository) Close() error {
	return r.orderSeq.Release()
}

// AddApps adds one or more apps to storage.
func (r *AppRepository) AddApps(ctx context.Context, apps ...*core.AppInfo) ([]*core.AppInfo, error) {
	for _, app := range apps {
		if err := core.ValidateAppInfo(app); err != nil {
			return nil, err
		}
	}

	// Ids and orders land in copies and reach the caller only after commit
	stored := make([]core.AppInfo, len(apps))
	err := r.backend.Update(ctx, func(tx *badger.Txn) error {
		for i, app := range apps {
			rec := *app
			if rec.Id == 0 {
				rec.Id = core.IDFromComponent(rec.Package, rec.Activity)
			}

			key := makeAppKey(rec.Id)
			existing, err := readApp(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("%w: %s", storage.ErrDuplicateKey, rec.ComponentName())
			}

			order, err := r.nextOrder()
			if err != nil {
				return err
			}
			rec.Order = order

			if err := tx.Set(key, storage.MarshalAppInfo(&rec)); err != nil {
				return err
			}
			if err := tx.Set(makeAppOrderKey(rec.Order), storage.MarshalID(rec.Id)); err != nil {
				return err
			}
			if err := tx.Set(makeAppPackageKey(rec.Package, rec.Id), storage.MarshalID(rec.Id)); err != nil {
				return err
			}
			stored[i] = rec
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, app := range apps {
		app.Id = stored[i].Id
		app.Order = stored[i].Order
	}
	return apps, nil
}

func (r *AppRepository) nextOrder() (uint64, error) {
	next, err := r.orderSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if next == 0 {
		return r.orderSeq.Next()
	}
	return next, nil
}

// UpdateApps updates existing apps, keeping their catalog ordinal.
func (r *AppRepository) UpdateApps(ctx context.Context, apps ...*core.AppInfo) ([]*core.AppInfo, error) {
	for _, app := range apps {
		if err := core.ValidateAppInfo(app); err != nil {
			return nil, err
		}
	}

	stored := make([]core.AppInfo, len(apps))
	err := r.backend.Update(ctx, func(tx *badger.Txn) error {
		for i, app := range apps {
			rec := *app
			if rec.Id == 0 {
				rec.Id = core.IDFromComponent(rec.Package, rec.Activity)
			}
			key := makeAppKey(rec.Id)

			old, err := readApp(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: %s", storage.ErrNotFound, rec.ComponentName())
			}

			rec.Order = old.Order
			if err := tx.Set(key, storage.MarshalAppInfo(&rec)); err != nil {
				return err
			}
			stored[i] = rec
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, app := range apps {
		app.Id = stored[i].Id
		app.Order = stored[i].Order
	}
	return apps, nil
}

// DeleteApps removes apps by their IDs.
func (r *AppRepository) DeleteApps(ctx context.Context, ids ...core.ID) error {
	return r.backend.Update(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := deleteApp(tx, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeletePackage removes every app of pkg.
func (r *AppRepository) DeletePackage(ctx context.Context, pkg string) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.Update(ctx, func(tx *badger.Txn) error {
		var err error
		ids, err = packageIDs(tx, pkg)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := deleteApp(tx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetApp retrieves a single app by ID.
func (r *AppRepository) GetApp(ctx context.Context, id core.ID) (*core.AppInfo, error) {
	var result *core.AppInfo
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readApp(tx, makeAppKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	})
	return result, err
}

// GetApps retrieves multiple apps by their IDs.
func (r *AppRepository) GetApps(ctx context.Context, ids ...core.ID) ([]*core.AppInfo, error) {
	var result []*core.AppInfo
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			app, err := readApp(tx, makeAppKey(id))
			if err != nil {
				return err
			}
			if app != nil {
				result = append(result, app)
			}
		}
		return nil
	})
	return result, err
}

// ListApps returns every app in catalog order.
func (r *AppRepository) ListApps(ctx context.Context) ([]*core.AppInfo, error) {
	return r.ScanApps(ctx, 0, 0)
}

// ScanApps returns up to limit apps ordered after afterOrder.
func (r *AppRepository) ScanApps(ctx context.Context, afterOrder uint64, limit int) ([]*core.AppInfo, error) {
	var results []*core.AppInfo
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(appOrderPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makeAppOrderKey(afterOrder + 1)); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			id, err := readID(iter.Item())
			if err != nil {
				return err
			}
			app, err := readApp(tx, makeAppKey(id))
			if err != nil {
				return err
			}
			if app != nil {
				results = append(results, app)
			}
		}
		return nil
	})
	return results, err
}

// Count returns the number of stored apps.
func (r *AppRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.View(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(appOrderPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// packageIDs collects the IDs in the package index for pkg.
func packageIDs(tx *badger.Txn, pkg string) ([]core.ID, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makePartialAppPackageKey(pkg)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var ids []core.ID
	for iter.Rewind(); iter.Valid(); iter.Next() {
		id, err := readID(iter.Item())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// deleteApp removes an app record and its index entries.
func deleteApp(tx *badger.Txn, id core.ID) error {
	key := makeAppKey(id)
	app, err := readApp(tx, key)
	if err != nil {
		return err
	}
	if app == nil {
		return fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
	}

	if err := tx.Delete(makeAppOrderKey(app.Order)); err != nil {
		return err
	}
	if err := tx.Delete(makeAppPackageKey(app.Package, app.Id)); err != nil {
		return err
	}
	return tx.Delete(key)
}

// readApp reads an app record, returning nil if it doesn't exist.
func readApp(tx *badger.Txn, key []byte) (*core.AppInfo, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var app *core.AppInfo
	err = item.Value(func(val []byte) error {
		var err error
		app, err = storage.UnmarshalAppInfo(val)
		return err
	})
	return app, err
}

func readID(item *badger.Item) (core.ID, error) {
	var id core.ID
	err := item.Value(func(val []byte) error {
		var err error
		id, err = storage.UnmarshalID(val)
		return err
	})
	return id, err
}
