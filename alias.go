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

import "fmt"

// LatestAliasPrefix is the fixed mount point for the "latest" alias.
const LatestAliasPrefix = "/latest"

// aliasMode selects which alias sub-application, if any, to build.
type aliasMode int

const (
	aliasNone aliasMode = iota
	aliasLatest
	aliasLegacy
)

// aliasMode resolves the configured alias flags. When both are set,
// latest takes precedence over legacy.
func (c *config) aliasMode() aliasMode {
	switch {
	case c.enableLatest && c.enableLegacy:
		c.emit(DiagAliasPrecedence,
			"both latest and legacy aliases requested; latest takes precedence", nil)
		return aliasLatest
	case c.enableLatest:
		return aliasLatest
	case c.enableLegacy:
		return aliasLegacy
	default:
		return aliasNone
	}
}

// buildAlias builds the optional alias sub-application from the ordered
// cumulative tables.
//
//   - latest: mounted at LatestAliasPrefix, carrying the cumulative table
//     of the highest version present.
//   - legacy: mounted at the application root (empty prefix), carrying the
//     cumulative table of the default version. A default version with no
//     registered routes is a configuration error - there is no silent
//     fallback to another version's table.
//
// With no versionable routes at all, the alias is built with an empty
// table and the default version's label, so an alias-only composition
// still mounts.
func (c *config) buildAlias(mode aliasMode, tables []versionTable) (*SubApp, error) {
	switch mode {
	case aliasLatest:
		if len(tables) == 0 {
			return c.buildApp(LatestAliasPrefix, c.defaultVersion, newRouteTable(), true), nil
		}
		highest := tables[len(tables)-1]
		return c.buildApp(LatestAliasPrefix, highest.version, highest.table, true), nil

	case aliasLegacy:
		if len(tables) == 0 {
			return c.buildApp("", c.defaultVersion, newRouteTable(), true), nil
		}
		for _, vt := range tables {
			if vt.version == c.defaultVersion {
				return c.buildApp("", vt.version, vt.table, true), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrDefaultVersionMissing, c.defaultVersion)

	default:
		return nil, nil
	}
}
