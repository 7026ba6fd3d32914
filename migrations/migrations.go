// Package migrations встраивает SQL миграции в бинарник,
// применяются через goose при старте сервиса.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
