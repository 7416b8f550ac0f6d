// Package migrations embeds the schema history applied with goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
