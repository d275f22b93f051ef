// Package migrations embeds the schema migration files so the
// services apply them at startup without a deploy-time file layout.
package migrations

import "embed"

// Files holds the .sql migrations, applied in lexical order.
//
//go:embed *.sql
var Files embed.FS
