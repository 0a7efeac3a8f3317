// Package migrations embeds the SQL schema migrations of easekit.db.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
