// Package migrations holds the embedded goose SQL migrations applied at
// service startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
