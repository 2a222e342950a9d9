package appfs

import "embed"

// FS holds the schema migrations, one directory per goose dialect.
//
//go:embed migrations
var FS embed.FS

// MigrationsDir returns the migrations directory for a goose dialect.
func MigrationsDir(dialect string) string {
	return "migrations/" + dialect
}
