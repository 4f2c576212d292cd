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

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Defaults applied when the corresponding option is not supplied.
const (
	// DefaultVersionFormat is the template for semantic version labels.
	DefaultVersionFormat = "{major}.{minor}"

	// DefaultPrefixFormat is the template for version mount prefixes.
	DefaultPrefixFormat = "/v{major}_{minor}"

	// DefaultTitle is the document title used when none is configured.
	DefaultTitle = "API"
)

// Option configures an App. All options have sensible defaults and are
// validated fail-fast by New.
type Option func(*config)

// config carries composition settings. A fresh copy is owned by each
// App; nothing is shared at package level between compositions.
type config struct {
	title          string
	versionFormat  string
	prefixFormat   string
	defaultVersion Version
	enableLatest   bool
	enableLegacy   bool
	diagnostics    DiagnosticHandler
	registerer     prometheus.Registerer
	metrics        *compositionMetrics
}

func defaultConfig() config {
	return config{
		title:          DefaultTitle,
		versionFormat:  DefaultVersionFormat,
		prefixFormat:   DefaultPrefixFormat,
		defaultVersion: V(1, 0),
	}
}

// WithTitle sets the title used for the parent and per-version OpenAPI
// documents.
//
// Example:
//
//	app := versioning.MustNew(versioning.WithTitle("Storefront API"))
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

// WithVersionFormat sets the template for semantic version labels.
// The {major} and {minor} placeholders are substituted per version.
// Default: "{major}.{minor}".
func WithVersionFormat(format string) Option {
	return func(c *config) {
		c.versionFormat = format
	}
}

// WithPrefixFormat sets the template for version mount prefixes.
// The {major} and {minor} placeholders are substituted per version and
// the result must start with '/'. Default: "/v{major}_{minor}".
//
// Example:
//
//	// Mount versions at /api/v1.0, /api/v2.0, ...
//	app := versioning.MustNew(versioning.WithPrefixFormat("/api/v{major}.{minor}"))
func WithPrefixFormat(format string) Option {
	return func(c *config) {
		c.prefixFormat = format
	}
}

// WithDefaultVersion sets the version assigned to routes registered
// without an explicit version. Default: (1, 0).
func WithDefaultVersion(major, minor int) Option {
	return func(c *config) {
		c.defaultVersion = V(major, minor)
	}
}

// WithLatest mounts an extra alias sub-application at /latest exposing
// the cumulative route set of the highest version present.
func WithLatest() Option {
	return func(c *config) {
		c.enableLatest = true
	}
}

// WithLegacy mounts an extra alias sub-application at the application
// root exposing the cumulative route set of the default version, so
// unversioned clients keep working.
//
// If both WithLatest and WithLegacy are supplied, latest takes
// precedence and a DiagAliasPrecedence event is emitted.
func WithLegacy() Option {
	return func(c *config) {
		c.enableLegacy = true
	}
}

// WithDiagnostics sets an optional diagnostic event sink. The core
// algorithm carries no logging dependency; attach slog, a metrics
// counter, or anything else here.
//
// Example:
//
//	app := versioning.MustNew(
//	    versioning.WithDiagnostics(versioning.DiagnosticHandlerFunc(func(e versioning.DiagnosticEvent) {
//	        slog.Info(e.Message, "kind", e.Kind)
//	    })),
//	)
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(c *config) {
		c.diagnostics = handler
	}
}

// WithMetrics registers composition metrics (versions mounted, routes
// per version, overrides observed) with the given Prometheus
// registerer. Registration errors surface through New.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	app, err := versioning.New(versioning.WithMetrics(reg))
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = reg
	}
}

// validate checks the configuration fail-fast. Called by New so that
// malformed format strings or version components surface synchronously
// at construction, not at request time.
func (c *config) validate() error {
	if !c.defaultVersion.valid() {
		return fmt.Errorf("%w: default version %d.%d",
			ErrVersionNegative, c.defaultVersion.Major, c.defaultVersion.Minor)
	}
	if strings.TrimSpace(c.versionFormat) == "" {
		return ErrVersionFormatInvalid
	}
	if probe := expandFormat(c.prefixFormat, c.defaultVersion); !strings.HasPrefix(probe, "/") {
		return fmt.Errorf("%w: %q", ErrPrefixFormatInvalid, c.prefixFormat)
	}
	return nil
}

// prefixFor returns the mount prefix for a version.
func (c *config) prefixFor(v Version) string {
	return expandFormat(c.prefixFormat, v)
}

// labelFor returns the semantic label for a version.
func (c *config) labelFor(v Version) string {
	return expandFormat(c.versionFormat, v)
}

// emit delivers a diagnostic event if a handler is configured.
func (c *config) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if c.diagnostics == nil {
		return
	}
	c.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: message, Fields: fields})
}
