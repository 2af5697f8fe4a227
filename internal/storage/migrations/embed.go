package migrations

import "embed"

// FS contains the embedded SQLite schema migrations for the record store.
//
//go:embed *.sql
var FS embed.FS
