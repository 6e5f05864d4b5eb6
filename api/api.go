// Package api embeds the OpenAPI description of the walk server.
package api

import _ "embed"

// Spec is the OpenAPI 3 document served on GET /openapi.yaml.
//
//go:embed openapi.yaml
var Spec []byte
