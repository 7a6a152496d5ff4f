// Package openapi 公開APIのOpenAPI定義
package openapi

import _ "embed"

// Spec OpenAPI 3.0 定義（YAML）
//
//go:embed openapi.yaml
var Spec []byte
