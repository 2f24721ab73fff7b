// Package catalog owns the in-memory apps catalog and the queue that
// serializes every access to it.
//
// All reads and writes of an AllAppsList happen on a single worker goroutine
// owned by a Model. Callers submit Tasks; tasks run one at a time in
// submission order, so a search submitted after an update always observes
// the updated catalog, and a search never observes a half-applied update.
//
//	model, _ := catalog.NewModel()
//	defer model.Close()
//
//	err := catalog.Update(ctx, model, &catalog.AddAppsTask{Apps: apps})
//	titles, err := catalog.WithSnapshot(ctx, model, func(apps []*core.AppInfo) []string { ... })
//
// Update tasks optionally write through a storage.AppRepository before
// touching memory; ReloadTask rebuilds the catalog from one.
package catalog
