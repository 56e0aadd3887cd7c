// Package migrations embeds SQL migration files.
package migrations

import "embed"

// PostgresFS contiene las migraciones del esquema de cuentas/vínculos sociales.
//
//go:embed sql/*.sql
var PostgresFS embed.FS

// PostgresDir es el directorio dentro de PostgresFS donde viven las migraciones.
const PostgresDir = "sql"
