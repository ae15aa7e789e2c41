// Package migrations embeds the SQL schema migrations so binaries can
// migrate on startup without a copy of the source tree.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
