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


package catalog

import (
	"context"

	"github.com/poiesic/appsearch/core"
	"github.com/poiesic/appsearch/storage"
)

const (
	// DefaultBatchSize is the default number of apps to fetch in each batch
	DefaultBatchSize = 100
)

// Loader reads the stored catalog in batches.
type Loader struct {
	repo      storage.AppRepository
	batchSize int
}

// NewLoader creates a new loader.
// batchSize: number of apps to fetch in each batch (defaults when <= 0)
func NewLoader(repo storage.AppRepository, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Loader{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all stored apps in catalog order, calling fn for
// each batch. Iteration stops on first error from fn or when all apps are
// processed. Context cancellation is checked between batches.
func (l *Loader) ForEach(ctx context.Context, fn func([]*core.AppInfo) error) error {
	var after uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := l.repo.ScanApps(ctx, after, l.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}

		after = batch[len(batch)-1].Order
		if len(batch) < l.batchSize {
			return nil
		}
	}
}

// LoadAll returns every stored app in catalog order.
func (l *Loader) LoadAll(ctx context.Context) ([]*core.AppInfo, error) {
	var all []*core.AppInfo
	err := l.ForEach(ctx, func(batch []*core.AppInfo) error {
		all = append(all, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}
