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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Package-level handlers with distinct code pointers for identity tests.
func tagTestItems(w http.ResponseWriter, r *http.Request)  {}
func tagTestOrders(w http.ResponseWriter, r *http.Request) {}

func TestTagTable_TagAndLookup(t *testing.T) {
	t.Parallel()

	tags := NewTagTable()
	require.NoError(t, tags.Tag(tagTestItems, 2, 1))

	v, ok := tags.Lookup(tagTestItems)
	require.True(t, ok)
	assert.Equal(t, V(2, 1), v)

	_, ok = tags.Lookup(tagTestOrders)
	assert.False(t, ok, "untagged handler must not resolve")
	assert.Equal(t, 1, tags.Len())
}

func TestTagTable_HandlerFuncConversionPreservesIdentity(t *testing.T) {
	t.Parallel()

	tags := NewTagTable()
	require.NoError(t, tags.Tag(tagTestItems, 3, 0))

	// The same function looked up through its http.HandlerFunc form
	// must resolve to the same tag.
	v, ok := tags.Lookup(http.HandlerFunc(tagTestItems))
	require.True(t, ok)
	assert.Equal(t, V(3, 0), v)
}

func TestTagTable_RetagOverwrites(t *testing.T) {
	t.Parallel()

	tags := NewTagTable()
	require.NoError(t, tags.Tag(tagTestItems, 1, 0))
	require.NoError(t, tags.Tag(tagTestItems, 2, 0))

	v, ok := tags.Lookup(tagTestItems)
	require.True(t, ok)
	assert.Equal(t, V(2, 0), v)
	assert.Equal(t, 1, tags.Len())
}

func TestTagTable_Errors(t *testing.T) {
	t.Parallel()

	tags := NewTagTable()

	assert.ErrorIs(t, tags.Tag(nil, 1, 0), ErrNilHandler)
	assert.ErrorIs(t, tags.Tag("not a handler", 1, 0), ErrHandlerNotTaggable)
	assert.ErrorIs(t, tags.Tag(tagTestItems, -1, 0), ErrVersionNegative)

	var nilFn http.HandlerFunc
	assert.ErrorIs(t, tags.Tag(nilFn, 1, 0), ErrHandlerNotTaggable)
}

func TestTagTable_MustTagPanics(t *testing.T) {
	t.Parallel()

	tags := NewTagTable()
	assert.Panics(t, func() { tags.MustTag(nil, 1, 0) })
	assert.NotPanics(t, func() { tags.MustTag(tagTestOrders, 1, 2) })
}
