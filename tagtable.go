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
	"reflect"
	"sync"
)

// TagTable maps handler identity to a Version. It is the explicit
// registration-time counterpart of attaching a version attribute to a
// handler: populate it once at startup, then hand it to FromRouter so
// routes already registered on a host router can be classified.
//
// Handlers are keyed by their function code pointer, so only function
// values (http.HandlerFunc, plain funcs, bound methods) can be tagged.
// A handler wrapped by middleware after registration will no longer
// match its tag and falls back to the default version.
//
// Example:
//
//	tags := versioning.NewTagTable()
//	tags.Tag(listUsers, 1, 0)
//	tags.Tag(listUsersV2, 2, 0)
//
//	parent, err := versioning.FromRouter(mux, tags)
type TagTable struct {
	mu   sync.RWMutex
	tags map[uintptr]Version
}

// NewTagTable returns an empty tag table.
func NewTagTable() *TagTable {
	return &TagTable{tags: make(map[uintptr]Version)}
}

// Tag associates a handler with version (major, minor). Tagging the
// same handler again overwrites the previous association.
func (t *TagTable) Tag(handler any, major, minor int) error {
	if handler == nil {
		return ErrNilHandler
	}
	if !V(major, minor).valid() {
		return fmt.Errorf("%w: (%d, %d)", ErrVersionNegative, major, minor)
	}
	key, ok := handlerTagKey(handler)
	if !ok {
		return fmt.Errorf("%w: %T", ErrHandlerNotTaggable, handler)
	}
	t.mu.Lock()
	t.tags[key] = V(major, minor)
	t.mu.Unlock()
	return nil
}

// MustTag is like Tag but panics on error. Use during startup wiring
// where a failure is a programming mistake.
func (t *TagTable) MustTag(handler any, major, minor int) {
	if err := t.Tag(handler, major, minor); err != nil {
		panic(err)
	}
}

// Lookup returns the version tagged for the handler, if any.
// Absence of a tag is not an error; callers apply the default version.
func (t *TagTable) Lookup(handler any) (Version, bool) {
	key, ok := handlerTagKey(handler)
	if !ok {
		return Version{}, false
	}
	t.mu.RLock()
	v, ok := t.tags[key]
	t.mu.RUnlock()
	return v, ok
}

// Len returns the number of tagged handlers.
func (t *TagTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.tags)
}

// handlerTagKey derives the identity key for a handler. Conversions
// between func types (e.g. func(http.ResponseWriter, *http.Request) to
// http.HandlerFunc) preserve the code pointer, so either form matches.
func handlerTagKey(handler any) (uintptr, bool) {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func || v.IsNil() {
		return 0, false
	}
	return v.Pointer(), true
}
