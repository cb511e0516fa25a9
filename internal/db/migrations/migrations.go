// Package migrations embebe los scripts SQL del esquema para goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
