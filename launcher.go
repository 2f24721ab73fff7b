// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package appsearch wires the apps catalog, its storage and the search
// pipeline into a single Launcher.
package appsearch

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/appsearch/catalog"
	"github.com/poiesic/appsearch/config"
	"github.com/poiesic/appsearch/core"
	"github.com/poiesic/appsearch/match"
	"github.com/poiesic/appsearch/search"
	"github.com/poiesic/appsearch/storage"
	"github.com/poiesic/appsearch/storage/badger"
)

// Launcher owns a persistent apps catalog and searches it.
type Launcher struct {
	backend  *badger.Backend
	repo     storage.AppRepository
	model    *catalog.Model
	pipeline *search.AppsSearchPipeline
	config   *config.Config
	logger   *slog.Logger
}

// LauncherOption configures a Launcher.
type LauncherOption func(*launcherOptions)

type launcherOptions struct {
	config *config.Config
	logger *slog.Logger
}

// WithConfig sets the configuration. Default is config.Default().
func WithConfig(cfg *config.Config) LauncherOption {
	return func(o *launcherOptions) {
		if cfg != nil {
			o.config = cfg
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) LauncherOption {
	return func(o *launcherOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewLauncher opens the catalog store, loads the catalog into memory and
// starts the search pipeline.
func NewLauncher(ctx context.Context, opts ...LauncherOption) (*Launcher, error) {
	// Apply options
	options := &launcherOptions{
		config: config.Default(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	cfg := options.config
	logger := options.logger

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	matcherOpts, err := cfg.MatcherOptions()
	if err != nil {
		return nil, err
	}

	// Open backend
	backend, err := badger.OpenBackend(cfg.Storage.Path, cfg.Storage.InMemory,
		badger.WithBackendLogger(logger))
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewAppRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	model, err := catalog.NewModel(catalog.WithLogger(logger.With("component", "catalog")))
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	l := &Launcher{
		backend: backend,
		repo:    repo,
		model:   model,
		config:  cfg,
		logger:  logger,
	}

	if err := catalog.Update(ctx, model, &catalog.ReloadTask{Repository: repo}); err != nil {
		l.Close()
		return nil, err
	}

	pipelineOpts := []search.Option{
		search.WithLogger(logger.With("component", "search")),
		search.WithMatcher(match.NewMatcher(matcherOpts)),
		search.WithMaxResults(cfg.Search.MaxResults),
		search.WithStrings(cfg.StringTable()),
	}
	if cfg.Search.CallbackWorkers > 0 {
		pipelineOpts = append(pipelineOpts, search.WithCallbackWorkers(cfg.Search.CallbackWorkers))
	}
	l.pipeline, err = search.NewAppsSearchPipeline(model, pipelineOpts...)
	if err != nil {
		l.Close()
		return nil, err
	}

	return l, nil
}

// Close stops the pipeline and the catalog model and closes storage.
func (l *Launcher) Close() error {
	if l.pipeline != nil {
		l.pipeline.Release()
	}
	// Drains queued searches and updates
	l.model.Close()

	if err := l.repo.Close(); err != nil {
		l.logger.Error("error closing app repository", "err", err)
		return err
	}

	// Close backend
	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Repository returns the app repository.
func (l *Launcher) Repository() storage.AppRepository {
	return l.repo
}

// Model returns the catalog model.
func (l *Launcher) Model() *catalog.Model {
	return l.model
}

// Pipeline returns the search pipeline.
func (l *Launcher) Pipeline() *search.AppsSearchPipeline {
	return l.pipeline
}

// Config returns the configuration the launcher was built with.
func (l *Launcher) Config() *config.Config {
	return l.config
}

// PerformSearch searches asynchronously. See search.AppsSearchPipeline.
func (l *Launcher) PerformSearch(query string, callback func([]core.AdapterItem)) {
	l.pipeline.PerformSearch(query, callback)
}

// Search searches and waits for the result.
func (l *Launcher) Search(ctx context.Context, query string) ([]core.AdapterItem, error) {
	result := make(chan []core.AdapterItem, 1)
	l.pipeline.PerformSearch(query, func(items []core.AdapterItem) {
		result <- items
	})

	select {
	case items := <-result:
		return items, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// AddApps stores apps and adds them to the catalog.
// Payload is kept in memory only and is not stored.
func (l *Launcher) AddApps(ctx context.Context, apps ...*core.AppInfo) error {
	return catalog.Update(ctx, l.model, &catalog.AddAppsTask{Repository: l.repo, Apps: apps})
}

// RemovePackage removes every app of pkg and returns how many were removed.
func (l *Launcher) RemovePackage(ctx context.Context, pkg string) (int, error) {
	task := &catalog.RemovePackageTask{Repository: l.repo, Package: pkg}
	if err := catalog.Update(ctx, l.model, task); err != nil {
		return 0, err
	}
	return len(task.Removed), nil
}

// UpdateTitle renames an app.
func (l *Launcher) UpdateTitle(ctx context.Context, id core.ID, title string) error {
	return catalog.Update(ctx, l.model, &catalog.UpdateTitleTask{Repository: l.repo, Id: id, Title: title})
}

// Reload rebuilds the in-memory catalog from storage.
// Storage does not keep Payload, so every reloaded app has a nil Payload.
func (l *Launcher) Reload(ctx context.Context) error {
	return catalog.Update(ctx, l.model, &catalog.ReloadTask{Repository: l.repo})
}

// Apps returns a copy of the catalog in order.
func (l *Launcher) Apps(ctx context.Context) ([]*core.AppInfo, error) {
	apps, err := catalog.WithSnapshot(ctx, l.model, func(apps []*core.AppInfo) []*core.AppInfo {
		return slices.Clone(apps)
	})
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return apps, nil
}
