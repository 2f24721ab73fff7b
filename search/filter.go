package search

import (
	"github.com/poiesic/appsearch/core"
	"github.com/poiesic/appsearch/match"
)

// GetTitleMatchResult returns the apps whose title matches q, in the order
// they appear in apps. Duplicates are kept.
func GetTitleMatchResult(apps []*core.AppInfo, q match.Query, m *match.Matcher) []*core.AppInfo {
	result := make([]*core.AppInfo, 0)
	for _, app := range apps {
		if app == nil {
			continue
		}
		if m.Matches(app.Title, q) {
			result = append(result, app)
		}
	}
	return result
}
