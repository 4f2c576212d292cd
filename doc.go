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

// Package versioning partitions a flat collection of HTTP route
// registrations into version-scoped sub-applications, each mounted
// under its own URL prefix on a single parent router.
//
// Routes accumulate across ascending versions: version N inherits every
// route of every version below it, unless a higher version registers a
// different handler at the same (path, method) key, in which case the
// higher version's handler wins from that version on. An optional alias
// exposes one version's cumulative route set at a fixed prefix: /latest
// for the highest version present, or the application root for the
// default version ("legacy" mode, keeping unversioned clients working).
//
// Sub-applications and the parent are chi routers; the composed parent
// is a plain http.Handler. Each mounted version serves its own
// machine-readable interface description at {prefix}/openapi.json (and
// .yaml) and a browsable explorer at {prefix}/docs.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "net/http"
//
//	    "verso.dev/versioning"
//	)
//
//	func main() {
//	    app := versioning.MustNew(
//	        versioning.WithTitle("Storefront API"),
//	        versioning.WithLatest(),
//	    )
//
//	    app.GET("/items", listItems)            // default version 1.0
//	    app.Version(2, 0).GET("/items", listItemsV2) // overrides at 2.0
//	    app.Version(2, 0).GET("/orders", listOrders) // new at 2.0
//
//	    parent, err := app.Build()
//	    if err != nil {
//	        panic(err)
//	    }
//	    // /v1_0/items -> listItems
//	    // /v2_0/items -> listItemsV2, /v2_0/orders -> listOrders
//	    // /latest/*   -> same routes as /v2_0
//	    http.ListenAndServe(":8080", parent)
//	}
//
// # Constructor Pattern
//
// New validates configuration fail-fast and returns an error for
// malformed format strings, negative version components, or metric
// registration failures; MustNew panics instead. Registration methods
// panic on programmer errors (nil handler, relative path), matching the
// host router's behavior.
//
// # Adopting an Existing Router
//
// FromRouter classifies the routes already registered on a chi router,
// resolving versions through an explicit TagTable instead of per-route
// registration:
//
//	tags := versioning.NewTagTable()
//	tags.MustTag(listItemsV2, 2, 0)
//	parent, err := versioning.FromRouter(mux, tags, versioning.WithLegacy())
//
// Composition is a run-once, synchronous construction: each Build call
// allocates fresh grouping structures and returns an independent parent.
// Handlers are treated as immutable function references and may be
// attached to several sub-applications.
package versioning
