// Package schema embeds the SQLite schema for snapshot storage.
package schema

import _ "embed"

// SQL creates the snapshot tables when they are missing.
//
//go:embed schema.sql
var SQL string
