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
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version identifies an API version as a (major, minor) pair.
//
// Versions are totally ordered lexicographically by (Major, Minor).
// Every versionable route resolves to exactly one effective Version:
// either the one it was registered under, or the configured default.
type Version struct {
	Major int
	Minor int
}

// V is a shorthand constructor for a Version.
//
// Example:
//
//	versioning.V(2, 1) // version 2.1
func V(major, minor int) Version {
	return Version{Major: major, Minor: minor}
}

// Parse parses a semantic version label such as "2", "2.1" or "2.1.0"
// into a Version. Patch components and any prerelease/build metadata
// are discarded; only major and minor are significant here.
func Parse(label string) (Version, error) {
	sv, err := semver.NewVersion(strings.TrimSpace(label))
	if err != nil {
		return Version{}, fmt.Errorf("parse version label %q: %w", label, err)
	}
	return Version{Major: int(sv.Major()), Minor: int(sv.Minor())}, nil
}

// MustParse is like Parse but panics on invalid input.
// Use for version labels known at compile time.
func MustParse(label string) Version {
	v, err := Parse(label)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0, or +1 if v is less than, equal to, or greater
// than o, ordering by (Major, Minor).
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		if v.Major < o.Major {
			return -1
		}
		return 1
	case v.Minor != o.Minor:
		if v.Minor < o.Minor {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Less reports whether v orders strictly before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// String returns the dotted "major.minor" form, e.g. "1.0".
func (v Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// valid reports whether both components are non-negative.
func (v Version) valid() bool {
	return v.Major >= 0 && v.Minor >= 0
}

// expandFormat substitutes the {major} and {minor} placeholders of a
// format template with the version's components. Used for both mount
// prefixes (e.g. "/v{major}_{minor}") and semantic labels
// (e.g. "{major}.{minor}").
func expandFormat(format string, v Version) string {
	s := strings.ReplaceAll(format, "{major}", strconv.Itoa(v.Major))
	return strings.ReplaceAll(s, "{minor}", strconv.Itoa(v.Minor))
}
