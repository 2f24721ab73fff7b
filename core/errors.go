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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidAppInfo indicates an AppInfo failed validation.
	ErrInvalidAppInfo = errors.New("invalid app info")

	// ErrEmptyPackage indicates the Package field is empty.
	ErrEmptyPackage = errors.New("package cannot be empty")

	// ErrEmptyActivity indicates the Activity field is empty.
	ErrEmptyActivity = errors.New("activity cannot be empty")

	// ErrIDMismatch indicates the Id does not match the app's component.
	ErrIDMismatch = errors.New("id does not match component")
)
