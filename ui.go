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
	"encoding/json"
	"html"
	"net/http"
)

// swaggerUIVersion pins the swagger-ui-dist bundle loaded by the
// explorer pages.
const swaggerUIVersion = "5.30.2"

// serveDocsUI serves the browsable interface explorer for a document.
// specURL is resolved by the browser relative to the /docs page, so a
// sub-application mounted at /v2_0 loads /v2_0/openapi.json without
// knowing its own prefix.
func serveDocsUI(title, specURL string) http.HandlerFunc {
	cfg, err := json.Marshal(map[string]any{
		"url":         specURL,
		"dom_id":      "#swagger-ui",
		"deepLinking": true,
	})
	if err != nil {
		cfg = []byte(`{"url":"` + specURL + `","dom_id":"#swagger-ui"}`)
	}

	page := `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1" />
	<meta name="description" content="API Documentation" />
	<title>` + html.EscapeString(title) + `</title>
	<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@` + swaggerUIVersion + `/swagger-ui.css" />
</head>
<body>
	<div id="swagger-ui"></div>
	<script src="https://unpkg.com/swagger-ui-dist@` + swaggerUIVersion + `/swagger-ui-bundle.js" crossorigin></script>
	<script>
		window.onload = () => {
			window.ui = SwaggerUIBundle(` + string(cfg) + `);
		};
	</script>
</body>
</html>`

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}
}
