package catalog

import (
	"slices"

	"github.com/poiesic/appsearch/core"
)

// AllAppsList is the ordered apps catalog.
//
// It is not safe for concurrent use; it is only ever touched from the Model
// worker. Mutations never modify a published slice or AppInfo: they build a
// new slice and replace changed entries with copies, so a slice returned by
// Data stays valid and unchanged after the task that read it has finished.
type AllAppsList struct {
	data      []*core.AppInfo
	lastOrder uint64
	loaded    bool
}

// NewAllAppsList creates an empty catalog.
func NewAllAppsList() *AllAppsList {
	return &AllAppsList{}
}

// Data returns the catalog in order. The slice must not be modified.
func (l *AllAppsList) Data() []*core.AppInfo {
	return l.data
}

// Len returns the number of apps in the catalog.
func (l *AllAppsList) Len() int {
	return len(l.data)
}

// Loaded reports whether the catalog has been populated by a reload.
func (l *AllAppsList) Loaded() bool {
	return l.loaded
}

// Get returns the app with the given ID, or nil.
func (l *AllAppsList) Get(id core.ID) *core.AppInfo {
	for _, app := range l.data {
		if app.Id == id {
			return app
		}
	}
	return nil
}

// Add appends apps to the end of the catalog.
// Apps without an ordinal are numbered after the last one.
func (l *AllAppsList) Add(apps ...*core.AppInfo) {
	if len(apps) == 0 {
		return
	}
	next := make([]*core.AppInfo, len(l.data), len(l.data)+len(apps))
	copy(next, l.data)
	for _, app := range apps {
		if app == nil {
			continue
		}
		if app.Order == 0 {
			app.Order = l.lastOrder + 1
		}
		l.lastOrder = max(l.lastOrder, app.Order)
		next = append(next, app)
	}
	l.data = next
}

// RemovePackage removes every app of pkg and returns the removed apps.
func (l *AllAppsList) RemovePackage(pkg string) []*core.AppInfo {
	var removed []*core.AppInfo
	kept := make([]*core.AppInfo, 0, len(l.data))
	for _, app := range l.data {
		if app.Package == pkg {
			removed = append(removed, app)
			continue
		}
		kept = append(kept, app)
	}
	if len(removed) > 0 {
		l.data = kept
	}
	return removed
}

// UpdateTitle replaces the title of the app with the given ID.
// The app keeps its position. Reports whether the app was found.
func (l *AllAppsList) UpdateTitle(id core.ID, title string) bool {
	idx := slices.IndexFunc(l.data, func(app *core.AppInfo) bool { return app.Id == id })
	if idx < 0 {
		return false
	}
	updated := *l.data[idx]
	updated.Title = title

	next := slices.Clone(l.data)
	next[idx] = &updated
	l.data = next
	return true
}

// Replace swaps the whole catalog for apps and marks it loaded.
func (l *AllAppsList) Replace(apps []*core.AppInfo) {
	l.data = slices.DeleteFunc(slices.Clone(apps), func(app *core.AppInfo) bool { return app == nil })
	l.lastOrder = 0
	for _, app := range l.data {
		l.lastOrder = max(l.lastOrder, app.Order)
	}
	l.loaded = true
}

// Clear empties the catalog.
func (l *AllAppsList) Clear() {
	l.data = nil
	l.lastOrder = 0
	l.loaded = false
}
