package search

import (
	"github.com/poiesic/appsearch/core"
)

// SearchMonitor provides hooks to observe the search process.
// Hooks run on the catalog worker and must not block.
type SearchMonitor interface {
	Start(query string)
	AfterFilter(query string, matched []*core.AppInfo)
	Finish(query string, items []core.AdapterItem)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterFilter(_ string, _ []*core.AppInfo) {}
func (n *noopMonitor) Finish(_ string, _ []core.AdapterItem)   {}
