// Package garden embeds the goose migrations for the write-side schema.
package garden

import "embed"

//go:embed *.sql
var FS embed.FS
