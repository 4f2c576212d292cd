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

// DiagnosticEvent describes something noteworthy observed during
// composition: a mounted version, an overridden route, an alias policy
// decision.
//
// Diagnostic events are optional - composition behaves identically
// whether they are collected or not. They give callers visibility into
// edge cases without coupling the core algorithm to a logging library.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagVersionMounted is emitted once per sub-application mounted on the parent.
	DiagVersionMounted DiagnosticKind = "version_mounted"

	// DiagRouteOverridden is emitted when a route replaces an earlier route
	// at the same (path, method) key in the cumulative table.
	DiagRouteOverridden DiagnosticKind = "route_overridden"

	// DiagAliasPrecedence is emitted when both latest and legacy aliases are
	// requested; the latest alias takes precedence.
	DiagAliasPrecedence DiagnosticKind = "alias_precedence_latest"

	// DiagEmptyComposition is emitted when no versionable routes were
	// supplied, yielding zero version sub-applications.
	DiagEmptyComposition DiagnosticKind = "empty_composition"

	// DiagStaticRemounted is emitted when a static mount is re-mounted on
	// the parent because an alias is enabled.
	DiagStaticRemounted DiagnosticKind = "static_remounted"
)

// DiagnosticHandler receives diagnostic events from the composer.
// Implementations may log, emit metrics, or ignore them.
//
// Example with slog:
//
//	handler := versioning.DiagnosticHandlerFunc(func(e versioning.DiagnosticEvent) {
//	    slog.Info(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	app := versioning.MustNew(versioning.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
