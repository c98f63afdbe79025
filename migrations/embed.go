// Package migrations схема БД для goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
