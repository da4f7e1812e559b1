// Package migrations embeds the goose schema migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
