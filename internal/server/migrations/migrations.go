// Package migrations embeds the goose migrations that create the relational
// schema. Every statement is create-if-absent, so running them against an
// existing database is harmless.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
