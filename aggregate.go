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

import "sort"

// taggedRoute is a versionable route with its resolved effective version.
type taggedRoute struct {
	version Version
	route   Route
}

// versionTable pairs a version with its cumulative route table: every
// route of this version and of all lower versions, with same-key
// collisions resolved in favor of the highest version that defines the
// key.
type versionTable struct {
	version Version
	table   *routeTable
}

// aggregate groups tagged routes into per-version buckets, sorts the
// distinct versions ascending, and folds the buckets into cumulative
// route tables. Version N always carries every route of every version
// <= N; this inheritance is what distinguishes the composition from a
// naive per-version partition.
//
// onOverride, if non-nil, is invoked whenever a route replaces an
// existing entry at the same (path, method) key - both across versions
// and for duplicate registrations within one version (last wins, never
// an error).
//
// An empty input yields an empty result: no sub-applications are built.
func aggregate(pairs []taggedRoute, onOverride func(v Version, rt Route)) []versionTable {
	buckets := make(map[Version][]Route)
	var versions []Version
	for _, p := range pairs {
		if _, seen := buckets[p.version]; !seen {
			versions = append(versions, p.version)
		}
		buckets[p.version] = append(buckets[p.version], p.route)
	}

	sort.Slice(versions, func(i, j int) bool { return versions[i].Less(versions[j]) })

	running := newRouteTable()
	out := make([]versionTable, 0, len(versions))
	for _, v := range versions {
		for _, rt := range buckets[v] {
			if overrode := running.set(rt); overrode && onOverride != nil {
				onOverride(v, rt)
			}
		}
		out = append(out, versionTable{version: v, table: running.snapshot()})
	}
	return out
}
