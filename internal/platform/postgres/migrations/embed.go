// Package migrations embeds the goose SQL migrations for the taskhub schema.
package migrations

import "embed"

// FS holds every *.sql migration, in version order by filename.
//
//go:embed *.sql
var FS embed.FS
