package migrations

import "embed"

// FS contains the embedded SQLite migrations for the preset store.
//
//go:embed *.sql
var FS embed.FS
