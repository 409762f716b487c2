// Package migrations embebe el esquema de la base. No hay versionado
// incremental: el esquema completo es idempotente (IF NOT EXISTS).
package migrations

import _ "embed"

//go:embed schema.sql
var Schema string
