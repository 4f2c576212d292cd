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
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SubApp is one isolated, version-scoped sub-application: a router
// populated with the version's cumulative route set at construction.
// Sub-applications never re-observe later mutations of the input.
//
// Every SubApp additionally serves its own interface description at
// /openapi.json (and /openapi.yaml) and a browsable explorer at /docs,
// both relative to its mount prefix.
type SubApp struct {
	version Version
	prefix  string
	label   string
	alias   bool
	routes  []Route
	mux     *chi.Mux
}

// ServeHTTP dispatches to the sub-application's router.
func (s *SubApp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Version returns the version this sub-application exposes.
func (s *SubApp) Version() Version { return s.version }

// Prefix returns the mount prefix. The legacy alias has an empty prefix.
func (s *SubApp) Prefix() string { return s.prefix }

// Label returns the semantic version label, e.g. "2.1".
func (s *SubApp) Label() string { return s.label }

// Alias reports whether this sub-application is a latest/legacy alias
// rather than a numbered version.
func (s *SubApp) Alias() bool { return s.alias }

// Routes returns the sub-application's route list in table order:
// oldest surviving routes first, routes added at this version last.
// The introspection endpoints are not included.
func (s *SubApp) Routes() []Route {
	out := make([]Route, len(s.routes))
	copy(out, s.routes)
	return out
}

// buildSubApp materializes one version's cumulative route table as an
// isolated router under the configured prefix.
func (c *config) buildSubApp(v Version, table *routeTable) *SubApp {
	return c.buildApp(c.prefixFor(v), v, table, false)
}

// buildApp constructs a sub-application at an explicit prefix. Shared
// by the per-version builder and the alias builder.
func (c *config) buildApp(prefix string, v Version, table *routeTable, alias bool) *SubApp {
	sub := &SubApp{
		version: v,
		prefix:  prefix,
		label:   c.labelFor(v),
		alias:   alias,
		routes:  table.routes(),
		mux:     chi.NewRouter(),
	}
	for _, rt := range sub.routes {
		// Re-adding the same handler to several routers is safe: handlers
		// are read-only function references.
		sub.mux.Method(rt.Method, rt.Path, rt.Handler)
	}
	c.registerIntrospection(sub)
	return sub
}
