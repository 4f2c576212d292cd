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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// eventSink collects diagnostic events for assertions.
type eventSink struct {
	events []DiagnosticEvent
}

func (s *eventSink) OnDiagnostic(e DiagnosticEvent) {
	s.events = append(s.events, e)
}

func (s *eventSink) kinds() []DiagnosticKind {
	out := make([]DiagnosticKind, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Kind)
	}
	return out
}

func TestBuild_SingleVersion(t *testing.T) {
	t.Parallel()

	// One handler tagged (1,0) at GET /items: one sub-application at
	// /v1_0 labeled "1.0" containing that route.
	app := MustNew()
	app.Version(1, 0).GET("/items", textHandler("items v1"))

	parent, err := app.Build()
	require.NoError(t, err)

	mounts := parent.Mounts()
	require.Len(t, mounts, 1)
	assert.Equal(t, "/v1_0", mounts[0].Prefix)
	assert.Equal(t, "1.0", mounts[0].Label)
	assert.False(t, mounts[0].Alias)
	require.Len(t, mounts[0].App.Routes(), 1)

	w := doGet(t, parent, "/v1_0/items")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "items v1", w.Body.String())
}

func TestBuild_DefaultVersionAppliesToUntaggedRoutes(t *testing.T) {
	t.Parallel()

	app := MustNew(WithDefaultVersion(3, 2))
	app.GET("/items", textHandler("items"))

	parent, err := app.Build()
	require.NoError(t, err)

	mounts := parent.Mounts()
	require.Len(t, mounts, 1)
	assert.Equal(t, "/v3_2", mounts[0].Prefix)
	assert.Equal(t, "3.2", mounts[0].Label)
}

func TestBuild_OverrideNotDuplication(t *testing.T) {
	t.Parallel()

	// Same path+method at (1,0) and (2,0): v1 keeps the first handler,
	// v2 exposes the second.
	app := MustNew()
	app.Version(1, 0).GET("/items", textHandler("items v1"))
	app.Version(2, 0).GET("/items", textHandler("items v2"))

	parent, err := app.Build()
	require.NoError(t, err)

	assert.Equal(t, "items v1", doGet(t, parent, "/v1_0/items").Body.String())
	assert.Equal(t, "items v2", doGet(t, parent, "/v2_0/items").Body.String())

	v2, ok := parent.Sub("/v2_0")
	require.True(t, ok)
	require.Len(t, v2.Routes(), 1, "override must replace, not duplicate")
}

func TestBuild_CumulativeUnionAtLatest(t *testing.T) {
	t.Parallel()

	// GET /a at (1,0), GET /b at (2,0): /latest exposes both.
	app := MustNew(WithLatest())
	app.Version(1, 0).GET("/a", textHandler("a"))
	app.Version(2, 0).GET("/b", textHandler("b"))

	parent, err := app.Build()
	require.NoError(t, err)

	assert.Equal(t, "a", doGet(t, parent, "/latest/a").Body.String())
	assert.Equal(t, "b", doGet(t, parent, "/latest/b").Body.String())

	// /v1_0 must not see /b.
	assert.Equal(t, http.StatusNotFound, doGet(t, parent, "/v1_0/b").Code)

	mounts := parent.Mounts()
	require.Len(t, mounts, 3)
	last := mounts[len(mounts)-1]
	assert.True(t, last.Alias)
	assert.Equal(t, LatestAliasPrefix, last.Prefix)
	assert.Equal(t, "2.0", last.Label, "latest alias carries the highest version's label")
}

func TestBuild_LatestEqualsHighestVersionRouteSet(t *testing.T) {
	t.Parallel()

	app := MustNew(WithLatest())
	app.Version(1, 0).GET("/a", textHandler("a"))
	app.Version(1, 0).POST("/a", textHandler("a post"))
	app.Version(2, 0).GET("/b", textHandler("b"))

	parent, err := app.Build()
	require.NoError(t, err)

	highest, ok := parent.Sub("/v2_0")
	require.True(t, ok)
	alias, ok := parent.Sub(LatestAliasPrefix)
	require.True(t, ok)

	assert.Equal(t, routeKeySet(highest.Routes()), routeKeySet(alias.Routes()))
}

func TestBuild_LegacyAliasExposesDefaultVersionAtRoot(t *testing.T) {
	t.Parallel()

	app := MustNew(WithLegacy())
	app.GET("/items", textHandler("items v1"))
	app.Version(2, 0).GET("/orders", textHandler("orders v2"))

	parent, err := app.Build()
	require.NoError(t, err)

	// Root serves the default version's cumulative table.
	assert.Equal(t, "items v1", doGet(t, parent, "/items").Body.String())
	assert.Equal(t, http.StatusNotFound, doGet(t, parent, "/orders").Code,
		"legacy alias must not leak higher-version routes")
	assert.Equal(t, "orders v2", doGet(t, parent, "/v2_0/orders").Body.String())

	alias, ok := parent.Sub("")
	require.True(t, ok)
	assert.True(t, alias.Alias())
	assert.Equal(t, "", alias.Prefix())
	assert.Equal(t, "1.0", alias.Label())
}

func TestBuild_LegacyWithoutDefaultVersionFails(t *testing.T) {
	t.Parallel()

	// Versions exist, but none is the default: the accidental
	// "last table wins" fallback is a configuration error here.
	app := MustNew(WithLegacy())
	app.Version(2, 0).GET("/items", textHandler("items"))

	_, err := app.Build()
	require.ErrorIs(t, err, ErrDefaultVersionMissing)
}

func TestBuild_EmptyCompositionWithLegacyAlias(t *testing.T) {
	t.Parallel()

	// No versionable routes, one static mount, legacy enabled: zero
	// version sub-applications, one alias at root with zero routes, and
	// the static mount reachable at its original path.
	sink := &eventSink{}
	app := MustNew(WithLegacy(), WithDiagnostics(sink))
	app.Mount("/static", textHandler("static asset"))

	parent, err := app.Build()
	require.NoError(t, err)

	mounts := parent.Mounts()
	require.Len(t, mounts, 1)
	assert.True(t, mounts[0].Alias)
	assert.Empty(t, mounts[0].App.Routes())

	assert.Equal(t, "static asset", doGet(t, parent, "/static").Body.String())
	assert.Contains(t, sink.kinds(), DiagEmptyComposition)
	assert.Contains(t, sink.kinds(), DiagStaticRemounted)
}

func TestBuild_StaticMountsInvisibleWithoutAlias(t *testing.T) {
	t.Parallel()

	app := MustNew()
	app.GET("/items", textHandler("items"))
	app.Mount("/static", textHandler("static asset"))

	parent, err := app.Build()
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, doGet(t, parent, "/static").Code)
	assert.Equal(t, http.StatusNotFound, doGet(t, parent, "/v1_0/static").Code,
		"static mounts must not appear under version prefixes")
}

func TestBuild_LatestTakesPrecedenceOverLegacy(t *testing.T) {
	t.Parallel()

	sink := &eventSink{}
	app := MustNew(WithLatest(), WithLegacy(), WithDiagnostics(sink))
	app.GET("/items", textHandler("items"))

	parent, err := app.Build()
	require.NoError(t, err)

	_, legacy := parent.Sub("")
	assert.False(t, legacy, "no legacy alias when latest takes precedence")
	_, latest := parent.Sub(LatestAliasPrefix)
	assert.True(t, latest)
	assert.Contains(t, sink.kinds(), DiagAliasPrecedence)
}

func TestBuild_DuplicatePrefixAcrossVersions(t *testing.T) {
	t.Parallel()

	// A constant prefix format maps every version to the same mount
	// point; that is a caller error, not a silent last-mount-wins.
	app := MustNew(WithPrefixFormat("/api"))
	app.Version(1, 0).GET("/items", textHandler("v1"))
	app.Version(2, 0).GET("/items", textHandler("v2"))

	_, err := app.Build()
	require.ErrorIs(t, err, ErrDuplicateMountPrefix)
}

func TestBuild_DuplicatePrefixWithAlias(t *testing.T) {
	t.Parallel()

	app := MustNew(WithPrefixFormat("/latest"), WithLatest())
	app.Version(1, 0).GET("/items", textHandler("v1"))

	_, err := app.Build()
	require.ErrorIs(t, err, ErrDuplicateMountPrefix)
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	app := MustNew(WithLatest())
	app.Version(1, 0).GET("/a", textHandler("a"))
	app.Version(2, 0).GET("/b", textHandler("b"))
	app.Version(2, 0).GET("/a", textHandler("a v2"))

	first, err := app.Build()
	require.NoError(t, err)
	second, err := app.Build()
	require.NoError(t, err)

	fm, sm := first.Mounts(), second.Mounts()
	require.Equal(t, len(fm), len(sm))
	for i := range fm {
		assert.Equal(t, fm[i].Prefix, sm[i].Prefix)
		assert.Equal(t, fm[i].Label, sm[i].Label)
		assert.Equal(t, routeKeySet(fm[i].App.Routes()), routeKeySet(sm[i].App.Routes()))
	}
}

func TestBuild_CustomFormats(t *testing.T) {
	t.Parallel()

	app := MustNew(
		WithPrefixFormat("/api/v{major}.{minor}"),
		WithVersionFormat("v{major}.{minor}"),
	)
	app.Version(2, 1).GET("/items", textHandler("items"))

	parent, err := app.Build()
	require.NoError(t, err)

	mounts := parent.Mounts()
	require.Len(t, mounts, 1)
	assert.Equal(t, "/api/v2.1", mounts[0].Prefix)
	assert.Equal(t, "v2.1", mounts[0].Label)
	assert.Equal(t, "items", doGet(t, parent, "/api/v2.1/items").Body.String())
}

func TestBuild_NoRoutesNoAlias(t *testing.T) {
	t.Parallel()

	app := MustNew()
	parent, err := app.Build()
	require.NoError(t, err)
	assert.Empty(t, parent.Mounts())
}

func TestBuild_MountOrderAscending(t *testing.T) {
	t.Parallel()

	app := MustNew(WithLatest())
	app.Version(2, 0).GET("/b", textHandler("b"))
	app.Version(1, 0).GET("/a", textHandler("a"))
	app.Version(1, 1).GET("/c", textHandler("c"))

	parent, err := app.Build()
	require.NoError(t, err)

	var prefixes []string
	for _, m := range parent.Mounts() {
		prefixes = append(prefixes, m.Prefix)
	}
	assert.Equal(t, []string{"/v1_0", "/v1_1", "/v2_0", "/latest"}, prefixes)
}

func TestApp_RegistrationPanics(t *testing.T) {
	t.Parallel()

	app := MustNew()
	assert.Panics(t, func() { app.GET("/items", nil) })
	assert.Panics(t, func() { app.GET("items", textHandler("x")) })
	assert.Panics(t, func() { app.Mount("", textHandler("x")) })
	assert.Panics(t, func() { app.Mount("/static", nil) })
}

func TestParent_SubLookup(t *testing.T) {
	t.Parallel()

	app := MustNew(WithTitle("Lookup API"))
	app.GET("/items", textHandler("items"))

	parent, err := app.Build()
	require.NoError(t, err)

	assert.Equal(t, "Lookup API", parent.Title())

	sub, ok := parent.Sub("/v1_0")
	require.True(t, ok)
	assert.Equal(t, V(1, 0), sub.Version())

	_, ok = parent.Sub("/v9_9")
	assert.False(t, ok)
}

// routeKeySet projects routes to their (method, path) identity.
func routeKeySet(routes []Route) map[string]struct{} {
	set := make(map[string]struct{}, len(routes))
	for _, rt := range routes {
		set[rt.Method+" "+rt.Path] = struct{}{}
	}
	return set
}
