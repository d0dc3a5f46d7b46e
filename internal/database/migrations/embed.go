// Package migrations holds the goose SQL migrations for the MySQL schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
