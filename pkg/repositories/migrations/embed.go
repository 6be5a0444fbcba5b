package migrations

import "embed"

// SQLite contains the SQLite schema migrations.
//
//go:embed sqlite/*.sql
var SQLite embed.FS

// Postgres contains the PostgreSQL schema migrations.
//
//go:embed postgres/*.sql
var Postgres embed.FS
