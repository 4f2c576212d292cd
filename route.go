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
	"net/http"
	"reflect"
	"runtime"
	"strings"
)

// Route is a versionable, handler-bound endpoint identified by
// (Path, Method). The handler is opaque to this package and is never
// invoked during composition.
type Route struct {
	// Method is the HTTP method, e.g. "GET".
	Method string

	// Path is the route pattern relative to the version prefix.
	Path string

	// Handler serves the route. Handlers are treated as immutable; the
	// same handler may be attached to several sub-applications.
	Handler http.Handler

	// Name is the resolved handler name, used as the OpenAPI operation id.
	Name string
}

// StaticMount is an opaque sub-tree delegate (for example a file server
// or a metrics endpoint). Static mounts are not subject to versioning;
// they are remounted verbatim on the parent when an alias is enabled.
type StaticMount struct {
	// Path is the mount point, e.g. "/static".
	Path string

	// Handler serves the whole sub-tree below Path.
	Handler http.Handler
}

// record is a registered versionable route before classification.
// tagged is false when the route was registered without an explicit
// version and should resolve to the configured default.
type record struct {
	route   Route
	version Version
	tagged  bool
}

// routeKey addresses a route within a cumulative table.
type routeKey struct {
	path   string
	method string
}

// routeTable is an insertion-ordered map from (path, method) to Route.
// Setting an existing key overwrites the entry in place and keeps its
// original position, so a table's value order is: oldest surviving
// routes first, routes newly added at the current version last.
type routeTable struct {
	order   []routeKey
	entries map[routeKey]Route
}

func newRouteTable() *routeTable {
	return &routeTable{entries: make(map[routeKey]Route)}
}

// set inserts or overwrites the route at its (path, method) key and
// reports whether an existing entry was overridden.
func (t *routeTable) set(rt Route) bool {
	key := routeKey{path: rt.Path, method: rt.Method}
	_, overrode := t.entries[key]
	if !overrode {
		t.order = append(t.order, key)
	}
	t.entries[key] = rt
	return overrode
}

// snapshot returns an independent copy of the table. Sub-applications
// snapshot the running table at construction and never re-observe
// later mutations.
func (t *routeTable) snapshot() *routeTable {
	cp := &routeTable{
		order:   make([]routeKey, len(t.order)),
		entries: make(map[routeKey]Route, len(t.entries)),
	}
	copy(cp.order, t.order)
	for k, v := range t.entries {
		cp.entries[k] = v
	}
	return cp
}

// routes returns the table's values in key-insertion order.
func (t *routeTable) routes() []Route {
	out := make([]Route, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.entries[key])
	}
	return out
}

func (t *routeTable) len() int {
	return len(t.order)
}

// handlerName resolves a human-readable name for a handler, used as the
// OpenAPI operation id. Function handlers resolve to their package-local
// symbol name; other handler types fall back to their Go type.
func handlerName(h http.Handler) string {
	if h == nil {
		return ""
	}
	v := reflect.ValueOf(h)
	if v.Kind() != reflect.Func {
		return fmt.Sprintf("%T", h)
	}
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return "anonymous"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	return name
}
