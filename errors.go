// Copyright 2026 The Verso Authors
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

package versioning

import "errors"

var (
	// ErrDuplicateMountPrefix indicates that two sub-applications (or a
	// sub-application and the alias) resolve to the same mount prefix.
	ErrDuplicateMountPrefix = errors.New("duplicate mount prefix")

	// ErrDefaultVersionMissing indicates that the legacy alias was requested
	// but no routes are registered under the configured default version.
	ErrDefaultVersionMissing = errors.New("default version has no registered routes")

	// ErrVersionNegative indicates that a version component is negative.
	ErrVersionNegative = errors.New("version components must be non-negative")

	// ErrPrefixFormatInvalid indicates that the prefix format does not
	// produce a mount path starting with '/'.
	ErrPrefixFormatInvalid = errors.New("prefix format must produce a path starting with '/'")

	// ErrVersionFormatInvalid indicates that the version label format is empty.
	ErrVersionFormatInvalid = errors.New("version format must not be empty")

	// ErrHandlerNotTaggable indicates that a handler cannot be used as a
	// tag table key because it is not a function value.
	ErrHandlerNotTaggable = errors.New("handler is not a function and cannot be tagged")

	// ErrNilHandler indicates that a nil handler was supplied.
	ErrNilHandler = errors.New("handler must not be nil")
)
