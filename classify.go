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
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// FromRouter composes a versioned parent from the routes already
// registered on an existing chi router. Top-level entries are
// classified as either versionable (method-bound handlers) or static
// (mounted sub-trees and wildcard patterns); versionable handlers
// resolve their version through the tag table, falling back to the
// default version when untagged.
//
// Handlers wrapped by route middleware no longer expose the registered
// function's identity and therefore resolve to the default version.
// Note that chi only reports mounted sub-trees through Routes() when
// they are chi routers or wildcard Handle registrations ("/static/*");
// a plain handler passed to Mount is invisible to introspection.
//
// Example:
//
//	mux := chi.NewRouter()
//	mux.Get("/items", listItems)
//	mux.Get("/orders", listOrders)
//	mux.Mount("/static", http.FileServer(http.Dir("./public")))
//
//	tags := versioning.NewTagTable()
//	tags.MustTag(listOrders, 2, 0)
//
//	parent, err := versioning.FromRouter(mux, tags, versioning.WithLatest())
func FromRouter(r chi.Routes, tags *TagTable, opts ...Option) (*Parent, error) {
	app, err := New(opts...)
	if err != nil {
		return nil, err
	}
	app.records, app.statics = classifyChiRoutes(r, tags)
	return app.Build()
}

// classifyChiRoutes separates a chi router's top-level routes into
// versionable records and static mounts. Mirrors the input contract of
// the composition: an ordered flat route list, scanned once.
func classifyChiRoutes(r chi.Routes, tags *TagTable) ([]record, []StaticMount) {
	var records []record
	var statics []StaticMount

	for _, rt := range r.Routes() {
		if isStaticRoute(rt) {
			if h := mountHandler(rt); h != nil {
				statics = append(statics, StaticMount{
					Path:    strings.TrimSuffix(strings.TrimSuffix(rt.Pattern, "/*"), "/"),
					Handler: h,
				})
			}
			continue
		}

		for _, method := range sortedMethods(rt.Handlers) {
			h := rt.Handlers[method]
			rec := record{route: Route{
				Method:  method,
				Path:    rt.Pattern,
				Handler: h,
				Name:    handlerName(h),
			}}
			if tags != nil {
				if v, ok := tags.Lookup(h); ok {
					rec.version = v
					rec.tagged = true
				}
			}
			records = append(records, rec)
		}
	}
	return records, statics
}

// isStaticRoute reports whether a chi route entry is an opaque sub-tree
// delegate rather than a single method-bound handler: either a mounted
// subrouter, or a wildcard pattern such as "/static/*".
func isStaticRoute(rt chi.Route) bool {
	return rt.SubRoutes != nil || strings.HasSuffix(rt.Pattern, "/*")
}

// mountHandler extracts the handler serving a static entry. A mounted
// chi subrouter is itself a handler and is remounted directly; chi's
// internal mount wrapper under the "*" key is bound to the original
// parent and must not be reused. Catch-all Handle registrations expose
// their handler under the "*" method key.
func mountHandler(rt chi.Route) http.Handler {
	if h, ok := rt.SubRoutes.(http.Handler); ok {
		return h
	}
	if h, ok := rt.Handlers["*"]; ok {
		return h
	}
	for _, method := range sortedMethods(rt.Handlers) {
		return rt.Handlers[method]
	}
	return nil
}

// sortedMethods returns the map's method keys in stable order, skipping
// chi's catch-all key.
func sortedMethods(handlers map[string]http.Handler) []string {
	methods := make([]string, 0, len(handlers))
	for m := range handlers {
		if m == "*" {
			continue
		}
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}
