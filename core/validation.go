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

import "fmt"

// ValidateAppInfo validates an AppInfo according to domain rules.
//
// Validation rules:
//   - Package must not be empty
//   - Activity must not be empty
//   - Id, when set, must equal IDFromComponent(Package, Activity)
//
// NOT validated:
//   - Title (an empty title is legal, it just never matches a query)
//   - Order (assigned by storage)
//   - Payload (opaque)
func ValidateAppInfo(app *AppInfo) error {
	if app == nil {
		return fmt.Errorf("%w: app is nil", ErrInvalidAppInfo)
	}

	if app.Package == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAppInfo, ErrEmptyPackage)
	}

	if app.Activity == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAppInfo, ErrEmptyActivity)
	}

	if app.Id != 0 && app.Id != IDFromComponent(app.Package, app.Activity) {
		return fmt.Errorf("%w: %w: %s", ErrInvalidAppInfo, ErrIDMismatch, app.ComponentName())
	}

	return nil
}
