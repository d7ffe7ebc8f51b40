// Package sweetshop embeds the goose migrations for the sweets and users tables.
package sweetshop

import "embed"

// FS holds the *.sql migrations, applied in file-name order.
//
//go:embed *.sql
var FS embed.FS
