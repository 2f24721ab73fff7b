package search

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/appsearch/catalog"
	"github.com/poiesic/appsearch/core"
	"github.com/poiesic/appsearch/match"
	"github.com/poiesic/appsearch/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestModel(t *testing.T, titles ...string) *catalog.Model {
	t.Helper()
	apps := catalog.NewAllAppsList()
	apps.Add(catalogOf(titles...)...)

	m, err := catalog.NewModel(catalog.WithApps(apps))
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func newTestPipeline(t *testing.T, queue TaskQueue, opts ...Option) *AppsSearchPipeline {
	t.Helper()
	p, err := NewAppsSearchPipeline(queue, opts...)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p
}

// searchSync runs PerformSearch and waits for its callback.
func searchSync(t *testing.T, p *AppsSearchPipeline, query string) []core.AdapterItem {
	t.Helper()
	result := make(chan []core.AdapterItem, 1)
	p.PerformSearch(query, func(items []core.AdapterItem) {
		result <- items
	})
	select {
	case items := <-result:
		return items
	case <-time.After(5 * time.Second):
		t.Fatalf("callback for %q never fired", query)
		return nil
	}
}

func appTitles(items []core.AdapterItem) []string {
	var out []string
	for _, item := range items {
		if item.Kind == core.KindApp {
			out = append(out, item.App.Title)
		}
	}
	return out
}

func TestNewAppsSearchPipeline(t *testing.T) {
	t.Run("requires a queue", func(t *testing.T) {
		_, err := NewAppsSearchPipeline(nil)
		assert.ErrorIs(t, err, ErrTaskQueueRequired)
	})

	t.Run("sections", func(t *testing.T) {
		p := newTestPipeline(t, newTestModel(t),
			WithStrings(resources.Table{core.StringSearchCorpusApps: "Applications"}),
			WithDecoration("rounded"),
		)
		assert.Equal(t, "Applications", p.HeaderSection().Title)
		assert.Equal(t, core.StringSearchCorpusApps, p.HeaderSection().TitleID)
		assert.Equal(t, "rounded", p.AppsSection().Decoration)
	})

	t.Run("option error", func(t *testing.T) {
		failing := func(*AppsSearchPipeline) error { return errors.New("bad option") }
		_, err := NewAppsSearchPipeline(newTestModel(t), WithCallbackWorkers(2), failing)
		assert.Error(t, err)
	})
}

func TestPerformSearch_Examples(t *testing.T) {
	m := newTestModel(t, "Camera", "Calendar", "Calculator", "Clock", "Chrome", "Chess")
	p := newTestPipeline(t, m)

	t.Run("ca", func(t *testing.T) {
		items := searchSync(t, p, "ca")
		require.Len(t, items, 4)
		assert.Equal(t, core.KindSearchTitle, items[0].Kind)
		assert.Equal(t, "Apps", items[0].Section.Title)
		assert.Equal(t, []string{"Camera", "Calendar", "Calculator"}, appTitles(items))
		for i, item := range items[1:] {
			assert.Equal(t, i, item.RankInSection)
			assert.Equal(t, i+1, item.Position)
			assert.Same(t, p.AppsSection(), item.Section)
		}
	})

	t.Run("xyz", func(t *testing.T) {
		items := searchSync(t, p, "xyz")
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, searchSync(t, p, "ca"), searchSync(t, p, "CA"))
	})

	t.Run("empty query matches everything up to the cap", func(t *testing.T) {
		items := searchSync(t, p, "")
		assert.Equal(t, []string{"Camera", "Calendar", "Calculator", "Clock", "Chrome"}, appTitles(items))
	})
}

func TestPerformSearch_Cap(t *testing.T) {
	m := newTestModel(t, "Chat 1", "Chat 2", "Chat 3", "Chat 4", "Chat 5", "Chat 6", "Chat 7", "Chat 8")

	t.Run("default cap", func(t *testing.T) {
		items := searchSync(t, newTestPipeline(t, m), "chat")
		require.Len(t, items, 6)
		assert.Equal(t, []string{"Chat 1", "Chat 2", "Chat 3", "Chat 4", "Chat 5"}, appTitles(items))
	})

	t.Run("configured cap", func(t *testing.T) {
		items := searchSync(t, newTestPipeline(t, m, WithMaxResults(2)), "chat")
		assert.Equal(t, []string{"Chat 1", "Chat 2"}, appTitles(items))
	})

	t.Run("zero cap", func(t *testing.T) {
		items := searchSync(t, newTestPipeline(t, m, WithMaxResults(-1)), "chat")
		assert.Empty(t, items)
	})
}

func TestPerformSearch_TokenConjunction(t *testing.T) {
	m := newTestModel(t, "Google Maps", "Google Drive", "Maps", "Drive")
	p := newTestPipeline(t, m)

	both := appTitles(searchSync(t, p, "google maps"))
	google := appTitles(searchSync(t, p, "google"))
	maps := appTitles(searchSync(t, p, "maps"))

	var intersection []string
	for _, g := range google {
		for _, mt := range maps {
			if g == mt {
				intersection = append(intersection, g)
			}
		}
	}
	assert.Equal(t, intersection, both)
	assert.Equal(t, []string{"Google Maps"}, both)
}

func TestPerformSearch_ObservesPriorUpdates(t *testing.T) {
	ctx := context.Background()
	m := newTestModel(t, "Camera")
	p := newTestPipeline(t, m)

	require.NoError(t, catalog.Submit(m, &catalog.AddAppsTask{Apps: []*core.AppInfo{
		{Title: "Calendar", Package: "com.example.calendar", Activity: ".Main"},
	}}, nil))
	assert.Equal(t, []string{"Camera", "Calendar"}, appTitles(searchSync(t, p, "ca")))

	require.NoError(t, catalog.Update(ctx, m, &catalog.RemovePackageTask{Package: "com.example.calendar"}))
	assert.Equal(t, []string{"Camera"}, appTitles(searchSync(t, p, "ca")))
}

func TestPerformSearch_CallbackFiresOnceEach(t *testing.T) {
	m := newTestModel(t, "Camera", "Calendar", "Clock")
	p := newTestPipeline(t, m, WithCallbackWorkers(2))

	const searches = 200
	var (
		wg    sync.WaitGroup
		calls atomic.Int64
	)
	wg.Add(searches)
	for i := 0; i < searches; i++ {
		p.PerformSearch("c", func(items []core.AdapterItem) {
			calls.Add(1)
			time.Sleep(50 * time.Microsecond)
			wg.Done()
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("callbacks did not complete")
	}
	assert.Equal(t, int64(searches), calls.Load())
}

// lockedBuffer is a bytes.Buffer safe for the concurrent writes of a logger.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPerformSearch_CallbackPanicUsesConfiguredLogger(t *testing.T) {
	out := &lockedBuffer{}
	logger := slog.New(slog.NewTextHandler(out, nil))

	// Worker count before logger: the pool must still report to logger.
	p := newTestPipeline(t, newTestModel(t, "Camera"), WithCallbackWorkers(1), WithLogger(logger))

	p.PerformSearch("cam", func([]core.AdapterItem) { panic("boom") })

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "search callback panicked")
	}, 5*time.Second, 10*time.Millisecond)

	// The pipeline keeps serving after a callback panic
	assert.Equal(t, []string{"Camera"}, appTitles(searchSync(t, p, "cam")))
}

func TestPerformSearch_ClosedModel(t *testing.T) {
	m, err := catalog.NewModel()
	require.NoError(t, err)
	m.Close()

	p := newTestPipeline(t, m)
	items := searchSync(t, p, "camera")
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestPerformSearch_ReleasedPool(t *testing.T) {
	p := newTestPipeline(t, newTestModel(t, "Camera"))
	p.Release()

	assert.Equal(t, []string{"Camera"}, appTitles(searchSync(t, p, "cam")))
}

func TestPerformSearch_NilCallback(t *testing.T) {
	p := newTestPipeline(t, newTestModel(t, "Camera"))
	assert.NotPanics(t, func() { p.PerformSearch("cam", nil) })
}

type recordingMonitor struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingMonitor) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingMonitor) Start(query string) { r.record("start:" + query) }

func (r *recordingMonitor) AfterFilter(query string, matched []*core.AppInfo) {
	r.record("filter:" + strings.Join(titlesOf(matched), ","))
}

func (r *recordingMonitor) Finish(query string, items []core.AdapterItem) {
	r.record("finish:" + query)
}

func TestPerformSearch_Monitor(t *testing.T) {
	mon := &recordingMonitor{}
	p := newTestPipeline(t, newTestModel(t, "Camera", "Clock"), WithMonitor(mon))

	searchSync(t, p, "cl")

	mon.mu.Lock()
	defer mon.mu.Unlock()
	assert.Equal(t, []string{"start:cl", "filter:Clock", "finish:cl"}, mon.events)
}

func TestPerformSearch_SubstringMatcher(t *testing.T) {
	m := newTestModel(t, "Camera", "Calendar")
	matcher := match.NewMatcher(match.Options{Policy: match.PolicySubstring, Language: language.Und})
	p := newTestPipeline(t, m, WithMatcher(matcher))

	assert.Equal(t, []string{"Calendar"}, appTitles(searchSync(t, p, "end")))
}

func TestSearch_Deterministic(t *testing.T) {
	p := newTestPipeline(t, newTestModel(t))
	apps := catalogOf("Camera", "Calendar", "Calculator", "Clock")

	first := p.Search(apps, "c")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, p.Search(apps, "c"))
	}
}
