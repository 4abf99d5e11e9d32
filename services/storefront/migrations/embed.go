// Package migrations embeds the storefront's PostgreSQL schema.
package migrations

import "embed"

// FS holds the *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
