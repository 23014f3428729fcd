// Package migrations embeds the database schema migrations.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
