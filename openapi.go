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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixed category tags grouping the per-version index operations in the
// parent document.
const (
	VersionsTag       = "Versions"
	DocumentationsTag = "Documentations"
)

// specDocument is the OpenAPI 3.0 document served per sub-application
// and for the parent index. Only the structural subset needed to
// describe the mounted route sets is modeled.
type specDocument struct {
	OpenAPI string                               `json:"openapi" yaml:"openapi"`
	Info    specInfo                             `json:"info" yaml:"info"`
	Paths   map[string]map[string]*specOperation `json:"paths" yaml:"paths"`
	Tags    []specTag                            `json:"tags,omitempty" yaml:"tags,omitempty"`
}

type specInfo struct {
	Title   string `json:"title" yaml:"title"`
	Version string `json:"version" yaml:"version"`
}

type specOperation struct {
	OperationID string                  `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string                  `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags        []string                `json:"tags,omitempty" yaml:"tags,omitempty"`
	Responses   map[string]specResponse `json:"responses" yaml:"responses"`
}

type specResponse struct {
	Description string `json:"description" yaml:"description"`
}

type specTag struct {
	Name string `json:"name" yaml:"name"`
}

// defaultResponses is the minimal response set attached to every
// documented operation; handlers are opaque, so nothing richer can be
// derived at composition time.
func defaultResponses() map[string]specResponse {
	return map[string]specResponse{
		"200": {Description: "Successful Response"},
	}
}

// buildSubAppSpec describes one sub-application's route table.
func buildSubAppSpec(title string, s *SubApp) specDocument {
	doc := specDocument{
		OpenAPI: "3.0.3",
		Info:    specInfo{Title: title, Version: s.label},
		Paths:   make(map[string]map[string]*specOperation, len(s.routes)),
	}
	for _, rt := range s.routes {
		item := doc.Paths[rt.Path]
		if item == nil {
			item = make(map[string]*specOperation)
			doc.Paths[rt.Path] = item
		}
		item[strings.ToLower(rt.Method)] = &specOperation{
			OperationID: rt.Name,
			Responses:   defaultResponses(),
		}
	}
	return doc
}

// buildParentSpec describes the parent's mount table: one entry per
// mounted version pointing at its interface description (tagged
// "Versions") and its explorer (tagged "Documentations"), named with
// the version's semantic label. The alias is not repeated here.
func buildParentSpec(title string, mounts []Mount) specDocument {
	doc := specDocument{
		OpenAPI: "3.0.3",
		Info:    specInfo{Title: title, Version: ""},
		Paths:   make(map[string]map[string]*specOperation, 2*len(mounts)),
		Tags:    []specTag{{Name: VersionsTag}, {Name: DocumentationsTag}},
	}
	for _, m := range mounts {
		if m.Alias {
			continue
		}
		doc.Paths[m.Prefix+"/openapi.json"] = map[string]*specOperation{
			"get": {
				OperationID: m.Label,
				Summary:     m.Label,
				Tags:        []string{VersionsTag},
				Responses:   defaultResponses(),
			},
		}
		doc.Paths[m.Prefix+"/docs"] = map[string]*specOperation{
			"get": {
				OperationID: m.Label + "_docs",
				Summary:     m.Label,
				Tags:        []string{DocumentationsTag},
				Responses:   defaultResponses(),
			},
		}
	}
	return doc
}

// registerIntrospection attaches the interface description and explorer
// endpoints to a sub-application, relative to its prefix.
func (c *config) registerIntrospection(s *SubApp) {
	doc := buildSubAppSpec(c.title, s)
	s.mux.Get("/openapi.json", serveSpecJSON(doc))
	s.mux.Get("/openapi.yaml", serveSpecYAML(doc))
	s.mux.Get("/docs", serveDocsUI(c.title+" "+s.label, "openapi.json"))
}

// registerParentIndex attaches the version index endpoints to the
// parent router. Explicit routes win over a root-mounted legacy alias
// in chi's trie, so these stay reachable either way.
func (c *config) registerParentIndex(p *Parent) {
	doc := buildParentSpec(c.title, p.mounts)
	p.mux.Get("/openapi.json", serveSpecJSON(doc))
	p.mux.Get("/openapi.yaml", serveSpecYAML(doc))
	p.mux.Get("/docs", serveDocsUI(c.title, "openapi.json"))
}

// serveSpecJSON serves a pre-rendered JSON document with ETag-based
// caching. Documents are immutable after composition, so rendering
// happens once.
func serveSpecJSON(doc specDocument) http.HandlerFunc {
	payload, err := json.Marshal(doc)
	return serveSpec(payload, err, "application/json")
}

// serveSpecYAML serves the YAML rendering of the same document.
func serveSpecYAML(doc specDocument) http.HandlerFunc {
	payload, err := yaml.Marshal(doc)
	return serveSpec(payload, err, "application/yaml")
}

func serveSpec(payload []byte, renderErr error, contentType string) http.HandlerFunc {
	if renderErr != nil {
		return func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "failed to render interface description", http.StatusInternalServerError)
		}
	}
	sum := sha256.Sum256(payload)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`
	return func(w http.ResponseWriter, r *http.Request) {
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Content-Type", contentType)
		w.Write(payload)
	}
}
