package search

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/appsearch/catalog"
	"github.com/poiesic/appsearch/core"
	"github.com/poiesic/appsearch/match"
	"github.com/poiesic/appsearch/resources"
)

// TaskQueue is the serialized execution context shared with catalog updates.
type TaskQueue interface {
	Enqueue(task catalog.Task) error
}

var _ TaskQueue = (*catalog.Model)(nil)

// AppsSearchPipeline searches the apps catalog by title.
type AppsSearchPipeline struct {
	queue      TaskQueue
	matcher    *match.Matcher
	strings    resources.Lookup
	decoration any
	maxResults int
	monitor    SearchMonitor
	workers    int
	callbacks  *ants.Pool
	logger     *slog.Logger

	headerSection *core.SectionInfo
	appsSection   *core.SectionInfo
}

// Option configures an AppsSearchPipeline.
type Option func(*AppsSearchPipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *AppsSearchPipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithMatcher sets the matcher used to compare titles and queries.
// Default is a matcher with match.DefaultOptions().
func WithMatcher(m *match.Matcher) Option {
	return func(p *AppsSearchPipeline) error {
		if m != nil {
			p.matcher = m
		}
		return nil
	}
}

// WithMaxResults sets the maximum number of app rows in a result.
// Default is DefaultMaxResults.
func WithMaxResults(n int) Option {
	return func(p *AppsSearchPipeline) error {
		if n < 0 {
			n = 0
		}
		p.maxResults = n
		return nil
	}
}

// WithStrings sets the lookup used to resolve section labels.
// Default is resources.Default().
func WithStrings(lookup resources.Lookup) Option {
	return func(p *AppsSearchPipeline) error {
		if lookup != nil {
			p.strings = lookup
		}
		return nil
	}
}

// WithDecoration attaches an opaque rendering handle to the apps section.
func WithDecoration(decoration any) Option {
	return func(p *AppsSearchPipeline) error {
		p.decoration = decoration
		return nil
	}
}

// WithMonitor sets a monitor that observes every search.
func WithMonitor(monitor SearchMonitor) Option {
	return func(p *AppsSearchPipeline) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		p.monitor = monitor
		return nil
	}
}

// WithCallbackWorkers sets the number of goroutines delivering callbacks.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithCallbackWorkers(size int) Option {
	return func(p *AppsSearchPipeline) error {
		if size < 1 {
			size = 1
		}
		p.workers = size
		return nil
	}
}

// NewAppsSearchPipeline creates a pipeline that runs its searches on queue.
func NewAppsSearchPipeline(queue TaskQueue, opts ...Option) (*AppsSearchPipeline, error) {
	if queue == nil {
		return nil, ErrTaskQueueRequired
	}

	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}

	p := &AppsSearchPipeline{
		queue:      queue,
		matcher:    match.NewMatcher(match.DefaultOptions()),
		strings:    resources.Default(),
		maxResults: DefaultMaxResults,
		monitor:    &noopMonitor{},
		workers:    workers,
		logger:     slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	// Built after the options so the panic handler sees the final logger
	pool, err := newCallbackPool(p.workers, p.logger)
	if err != nil {
		return nil, err
	}
	p.callbacks = pool

	// Sections are fixed for the lifetime of the pipeline
	p.headerSection = &core.SectionInfo{
		TitleID: core.StringSearchCorpusApps,
		Title:   p.strings.String(core.StringSearchCorpusApps),
	}
	p.appsSection = &core.SectionInfo{
		Decoration: p.decoration,
	}

	return p, nil
}

// newCallbackPool creates a non-blocking pool so a busy pool never holds up
// the catalog worker.
func newCallbackPool(size int, logger *slog.Logger) (*ants.Pool, error) {
	return ants.NewPool(size,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(r any) {
			logger.Error("search callback panicked", "panic", r)
		}),
	)
}

// Release releases the callback pool.
func (p *AppsSearchPipeline) Release() {
	if p.callbacks != nil {
		p.callbacks.Release()
	}
}

// HeaderSection returns the section of the header row.
func (p *AppsSearchPipeline) HeaderSection() *core.SectionInfo {
	return p.headerSection
}

// AppsSection returns the section of the app rows.
func (p *AppsSearchPipeline) AppsSection() *core.SectionInfo {
	return p.appsSection
}

// PerformSearch searches the catalog for query and passes the result to
// callback. It returns immediately. callback is called exactly once, from
// a pool goroutine, with an empty list when nothing matched or the catalog
// is unavailable. Stale results of superseded queries are still delivered.
func (p *AppsSearchPipeline) PerformSearch(query string, callback func(items []core.AdapterItem)) {
	if callback == nil {
		p.logger.Warn("search without callback ignored", "query", query)
		return
	}

	task := catalog.TaskFunc(func(_ context.Context, apps *catalog.AllAppsList) {
		items := []core.AdapterItem{}
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("search failed", "query", query, "panic", r)
				items = []core.AdapterItem{}
			}
			p.deliver(callback, items)
		}()
		items = p.Search(apps.Data(), query)
	})

	if err := p.queue.Enqueue(task); err != nil {
		p.logger.Warn("catalog unavailable, returning empty result", "query", query, "err", err)
		p.deliver(callback, []core.AdapterItem{})
	}
}

// Search runs a search synchronously against apps.
func (p *AppsSearchPipeline) Search(apps []*core.AppInfo, query string) []core.AdapterItem {
	p.monitor.Start(query)

	q := p.matcher.Normalize(query)
	matched := GetTitleMatchResult(apps, q, p.matcher)
	p.monitor.AfterFilter(query, matched)

	items := Assemble(matched, p.headerSection, p.appsSection, p.maxResults)
	p.monitor.Finish(query, items)

	p.logger.Debug("search complete", "query", query, "matches", len(matched), "items", len(items))
	return items
}

func (p *AppsSearchPipeline) deliver(callback func([]core.AdapterItem), items []core.AdapterItem) {
	if err := p.callbacks.Submit(func() { callback(items) }); err != nil {
		// Pool full or released
		p.logger.Debug("callback pool rejected delivery", "err", err)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("search callback panicked", "panic", r)
				}
			}()
			callback(items)
		}()
	}
}
