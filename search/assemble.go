package search

import "github.com/poiesic/appsearch/core"

// DefaultMaxResults is the number of app rows shown for a search.
const DefaultMaxResults = 5

// Assemble builds the result list for matched apps: a header row bound to
// header followed by at most limit app rows bound to apps. Nothing matched
// yields an empty list without a header.
func Assemble(matched []*core.AppInfo, header, apps *core.SectionInfo, limit int) []core.AdapterItem {
	n := min(len(matched), limit)
	if n <= 0 {
		return []core.AdapterItem{}
	}

	items := make([]core.AdapterItem, 0, n+1)
	items = append(items, core.AsSearchTitle(header, 0))
	for rank, app := range matched[:n] {
		items = append(items, core.AsApp(apps, len(items), app, rank))
	}
	return items
}
