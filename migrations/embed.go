package migrations

import "embed"

// FS embeds the per-dialect SQL migrations into the binary
//
//go:embed sqlite/*.sql postgres/*.sql mysql/*.sql
var FS embed.FS
