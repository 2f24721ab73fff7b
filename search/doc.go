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


// Package search turns a free-text query into a bounded, sectioned result
// list for a UI adapter.
//
// AppsSearchPipeline runs each search as a task on the catalog model, so a
// search always sees a consistent catalog and observes every update
// enqueued before it. A search is three stages:
//   - the query is normalized once by a match.Matcher
//   - GetTitleMatchResult keeps the matching apps in catalog order
//   - Assemble caps the matches and wraps them with a section header
//
// The callback passed to PerformSearch is delivered from a worker pool and
// fires exactly once, with an empty list when nothing matched or the
// catalog could not be reached.
package search
