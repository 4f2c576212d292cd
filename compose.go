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
	"strings"

	"github.com/go-chi/chi/v5"
)

// App collects route registrations and composes them into a versioned
// parent application. Create one with New or MustNew, register routes,
// then call Build.
//
// An App is not safe for concurrent registration; register routes during
// startup, from one goroutine. Build allocates fresh structures on every
// call, so building twice over the same registrations yields identical
// mount tables.
type App struct {
	cfg     config
	records []record
	statics []StaticMount
}

// New creates an App with the given options. Configuration is validated
// fail-fast: malformed format strings, negative version components, and
// metric registration failures surface here, not at request time.
func New(opts ...Option) (*App, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.registerer != nil {
		m, err := newCompositionMetrics(cfg.registerer)
		if err != nil {
			return nil, err
		}
		cfg.metrics = m
	}
	return &App{cfg: cfg}, nil
}

// MustNew is like New but panics on configuration errors.
func MustNew(opts ...Option) *App {
	app, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return app
}

// Handle registers a route at the default version.
func (a *App) Handle(method, path string, handler http.Handler) {
	a.add(record{route: a.newRoute(method, path, handler)})
}

// GET registers a GET route at the default version.
func (a *App) GET(path string, handler http.HandlerFunc) { a.Handle(http.MethodGet, path, handler) }

// POST registers a POST route at the default version.
func (a *App) POST(path string, handler http.HandlerFunc) { a.Handle(http.MethodPost, path, handler) }

// PUT registers a PUT route at the default version.
func (a *App) PUT(path string, handler http.HandlerFunc) { a.Handle(http.MethodPut, path, handler) }

// DELETE registers a DELETE route at the default version.
func (a *App) DELETE(path string, handler http.HandlerFunc) {
	a.Handle(http.MethodDelete, path, handler)
}

// PATCH registers a PATCH route at the default version.
func (a *App) PATCH(path string, handler http.HandlerFunc) {
	a.Handle(http.MethodPatch, path, handler)
}

// OPTIONS registers an OPTIONS route at the default version.
func (a *App) OPTIONS(path string, handler http.HandlerFunc) {
	a.Handle(http.MethodOptions, path, handler)
}

// HEAD registers a HEAD route at the default version.
func (a *App) HEAD(path string, handler http.HandlerFunc) { a.Handle(http.MethodHead, path, handler) }

// Version returns a registrar scoped to version (major, minor). Routes
// registered through it carry that version explicitly.
//
// Example:
//
//	v2 := app.Version(2, 0)
//	v2.GET("/items", listItemsV2)
func (a *App) Version(major, minor int) *VersionGroup {
	return &VersionGroup{app: a, version: V(major, minor)}
}

// Mount registers a static (opaque) sub-mount. Static mounts are not
// versioned; they become reachable on the parent only when a latest or
// legacy alias is enabled.
func (a *App) Mount(path string, handler http.Handler) {
	if handler == nil {
		panic("versioning: nil handler mounted at " + path)
	}
	if path == "" || path[0] != '/' {
		panic("versioning: mount path must start with '/'")
	}
	a.statics = append(a.statics, StaticMount{Path: strings.TrimSuffix(path, "/"), Handler: handler})
}

// Static serves files from the filesystem directory root as a static
// mount at path.
//
// Example:
//
//	app.Static("/static", "./public")
func (a *App) Static(path, root string) {
	a.StaticFS(path, http.Dir(root))
}

// StaticFS serves files from fs as a static mount at path. The handler
// uses http.FileServer, which prevents path traversal outside fs.
func (a *App) StaticFS(path string, fs http.FileSystem) {
	if path == "" || path[0] != '/' {
		panic("versioning: mount path must start with '/'")
	}
	path = strings.TrimSuffix(path, "/")
	a.Mount(path, http.StripPrefix(path, http.FileServer(fs)))
}

// newRoute builds the route record for a registration.
func (a *App) newRoute(method, path string, handler http.Handler) Route {
	if handler == nil {
		panic("versioning: nil handler for " + method + " " + path)
	}
	if path == "" || path[0] != '/' {
		panic("versioning: route path must start with '/'")
	}
	return Route{Method: method, Path: path, Handler: handler, Name: handlerName(handler)}
}

func (a *App) add(rec record) {
	a.records = append(a.records, rec)
}

// classify resolves each registered route's effective version: the
// explicitly attached one, or the default. Absence of a version is the
// default-version policy, never an error.
func (a *App) classify() []taggedRoute {
	pairs := make([]taggedRoute, 0, len(a.records))
	for _, rec := range a.records {
		v := rec.version
		if !rec.tagged {
			v = a.cfg.defaultVersion
		}
		pairs = append(pairs, taggedRoute{version: v, route: rec.route})
	}
	return pairs
}

// Build runs the composition pipeline: classify registered routes,
// aggregate them into cumulative per-version tables, build one isolated
// sub-application per version plus the optional alias, and mount
// everything on a fresh parent.
//
// Build may be called repeatedly; each call owns its grouping structures
// and returns an independent Parent.
func (a *App) Build() (*Parent, error) {
	pairs := a.classify()

	tables := aggregate(pairs, func(v Version, rt Route) {
		a.cfg.emit(DiagRouteOverridden, "route overridden by higher version", map[string]any{
			"version": v.String(),
			"method":  rt.Method,
			"path":    rt.Path,
		})
		a.cfg.metrics.observeOverride()
	})
	if len(tables) == 0 {
		a.cfg.emit(DiagEmptyComposition, "no versionable routes registered", nil)
	}

	subs := make([]*SubApp, 0, len(tables))
	for _, vt := range tables {
		subs = append(subs, a.cfg.buildSubApp(vt.version, vt.table))
	}

	alias, err := a.cfg.buildAlias(a.cfg.aliasMode(), tables)
	if err != nil {
		return nil, err
	}

	return compose(a.cfg, subs, alias, a.statics)
}

// VersionGroup registers routes under one explicit version.
type VersionGroup struct {
	app     *App
	version Version
}

// Handle registers a route under the group's version.
func (g *VersionGroup) Handle(method, path string, handler http.Handler) {
	g.app.add(record{
		route:   g.app.newRoute(method, path, handler),
		version: g.version,
		tagged:  true,
	})
}

// GET registers a GET route under the group's version.
func (g *VersionGroup) GET(path string, handler http.HandlerFunc) {
	g.Handle(http.MethodGet, path, handler)
}

// POST registers a POST route under the group's version.
func (g *VersionGroup) POST(path string, handler http.HandlerFunc) {
	g.Handle(http.MethodPost, path, handler)
}

// PUT registers a PUT route under the group's version.
func (g *VersionGroup) PUT(path string, handler http.HandlerFunc) {
	g.Handle(http.MethodPut, path, handler)
}

// DELETE registers a DELETE route under the group's version.
func (g *VersionGroup) DELETE(path string, handler http.HandlerFunc) {
	g.Handle(http.MethodDelete, path, handler)
}

// PATCH registers a PATCH route under the group's version.
func (g *VersionGroup) PATCH(path string, handler http.HandlerFunc) {
	g.Handle(http.MethodPatch, path, handler)
}

// OPTIONS registers an OPTIONS route under the group's version.
func (g *VersionGroup) OPTIONS(path string, handler http.HandlerFunc) {
	g.Handle(http.MethodOptions, path, handler)
}

// HEAD registers a HEAD route under the group's version.
func (g *VersionGroup) HEAD(path string, handler http.HandlerFunc) {
	g.Handle(http.MethodHead, path, handler)
}

// Mount describes one entry of the parent's mount table.
type Mount struct {
	// Prefix is the mount prefix; empty for the legacy alias.
	Prefix string

	// Label is the mounted version's semantic label.
	Label string

	// Alias reports whether this entry is the latest/legacy alias.
	Alias bool

	// App is the mounted sub-application.
	App *SubApp
}

// Parent is the composed top-level application. It owns the mount table
// from prefix to sub-application and serves the parent-level interface
// index at /openapi.json and /docs.
type Parent struct {
	title  string
	mux    *chi.Mux
	mounts []Mount
	byPath map[string]*SubApp
}

// ServeHTTP dispatches to the mounted sub-applications.
func (p *Parent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mux.ServeHTTP(w, r)
}

// Title returns the configured document title.
func (p *Parent) Title() string { return p.title }

// Mounts returns the mount table in ascending version order, the alias
// entry last if present.
func (p *Parent) Mounts() []Mount {
	out := make([]Mount, len(p.mounts))
	copy(out, p.mounts)
	return out
}

// Sub returns the sub-application mounted at prefix. The legacy alias
// is addressed by the empty prefix.
func (p *Parent) Sub(prefix string) (*SubApp, bool) {
	s, ok := p.byPath[prefix]
	return s, ok
}

// compose assembles the final parent: duplicate-prefix detection first,
// then one mount per sub-application, the alias, the alias-branch static
// remounts, and the parent-level index endpoints.
func compose(cfg config, subs []*SubApp, alias *SubApp, statics []StaticMount) (*Parent, error) {
	// Duplicate prefixes are a caller error and must be caught before any
	// mounting; iteration order must not silently let the last mount win.
	seen := make(map[string]struct{}, len(subs)+1)
	for _, sub := range subs {
		if _, dup := seen[sub.prefix]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMountPrefix, sub.prefix)
		}
		seen[sub.prefix] = struct{}{}
	}
	if alias != nil {
		if _, dup := seen[alias.prefix]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMountPrefix, alias.prefix)
		}
	}

	p := &Parent{
		title:  cfg.title,
		mux:    chi.NewRouter(),
		byPath: make(map[string]*SubApp, len(subs)+1),
	}

	for _, sub := range subs {
		p.mux.Mount(sub.prefix, sub)
		p.mounts = append(p.mounts, Mount{Prefix: sub.prefix, Label: sub.label, App: sub})
		p.byPath[sub.prefix] = sub
		cfg.emit(DiagVersionMounted, "version mounted", map[string]any{
			"prefix": sub.prefix,
			"label":  sub.label,
			"routes": len(sub.routes),
		})
	}

	if alias != nil {
		// Static mounts remain reachable without a version prefix, but only
		// in the alias branch; versioned sub-applications never see them.
		for _, st := range statics {
			p.mux.Mount(st.Path, st.Handler)
			cfg.emit(DiagStaticRemounted, "static mount re-mounted on parent", map[string]any{
				"path": st.Path,
			})
		}
		p.mux.Mount(mountPoint(alias.prefix), alias)
		p.mounts = append(p.mounts, Mount{Prefix: alias.prefix, Label: alias.label, Alias: true, App: alias})
		p.byPath[alias.prefix] = alias
		cfg.emit(DiagVersionMounted, "alias mounted", map[string]any{
			"prefix": alias.prefix,
			"label":  alias.label,
			"routes": len(alias.routes),
		})
	}

	cfg.registerParentIndex(p)
	cfg.metrics.observeBuild(p.mounts)

	return p, nil
}

// mountPoint maps a sub-application prefix to its chi mount pattern.
// The legacy alias's empty prefix mounts at the router root.
func mountPoint(prefix string) string {
	if prefix == "" {
		return "/"
	}
	return prefix
}
