// Package api holds the OpenAPI document for the JSON endpoints.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPISpec []byte
