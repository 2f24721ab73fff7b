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


// Package storage provides the persistence abstraction for the apps catalog.
//
// The in-memory catalog owned by the catalog package is the source of truth
// for searches. A repository lets the catalog survive restarts: update tasks
// write through it and a reload rebuilds the catalog from it.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the interface:
//
//	repo, err := badger.NewAppRepository(backend)  // returns storage.AppRepository
//
// Internal helpers may return concrete types since they're only used within
// the implementation package.
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	defer repo.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
