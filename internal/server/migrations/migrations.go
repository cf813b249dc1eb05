// Package migrations embeds the goose SQL migrations, one directory per
// dialect. SQLite keeps money columns as TEXT so decimal values read back
// exactly; PostgreSQL uses NUMERIC.
package migrations

import "embed"

const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
