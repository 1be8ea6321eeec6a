// Package migration creates the schema on first start. The registros table
// is the sentinel: when it exists every step is skipped.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

const sentinelQuery = "SELECT to_regclass('public.registros') IS NOT NULL"

var steps = []migrationStep{
	{
		Name: "create_table_obras",
		SQL: `CREATE TABLE IF NOT EXISTS obras (
  id                         UUID        PRIMARY KEY,
  nome                       TEXT        NOT NULL,
  descricao                  TEXT        NOT NULL DEFAULT '',
  codigo                     TEXT        NOT NULL UNIQUE,
  cliente                    TEXT        NOT NULL DEFAULT '',
  data_inicio                DATE,
  data_termino               DATE,
  responsavel_tecnico        TEXT        NOT NULL DEFAULT '',
  responsavel_administrativo TEXT        NOT NULL DEFAULT '',
  localizacao                TEXT        NOT NULL DEFAULT '',
  status                     TEXT        NOT NULL DEFAULT 'ativa' CHECK (status IN ('ativa', 'suspensa', 'concluida')),
  created_at                 TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at                 TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT obras_periodo CHECK (data_termino IS NULL OR data_inicio IS NULL OR data_termino >= data_inicio)
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id                         UUID        PRIMARY KEY,
  username                   TEXT        NOT NULL UNIQUE,
  email                      TEXT        NOT NULL,
  password_hash              TEXT        NOT NULL,
  role                       TEXT        NOT NULL DEFAULT 'usuario_padrao' CHECK (role IN ('administrador', 'usuario_padrao')),
  obra_id                    UUID        REFERENCES obras (id) ON DELETE RESTRICT,
  active                     BOOLEAN     NOT NULL DEFAULT true,
  must_change_password       BOOLEAN     NOT NULL DEFAULT false,
  last_login_at              TIMESTAMPTZ,
  created_at                 TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at                 TIMESTAMPTZ NOT NULL DEFAULT now(),
  password_changed_at        TIMESTAMPTZ,
  password_changed_by_admin  BOOLEAN     NOT NULL DEFAULT false,
  last_admin_password_change TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_users_email",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (lower(email));`,
	},
	{
		Name: "create_table_audit_logs",
		SQL: `CREATE TABLE IF NOT EXISTS audit_logs (
  id         UUID        PRIMARY KEY,
  action     TEXT        NOT NULL,
  user_id    UUID,
  ip_address TEXT        NOT NULL DEFAULT '',
  user_agent TEXT        NOT NULL DEFAULT '',
  details    JSONB       NOT NULL DEFAULT '{}'::jsonb,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  request_id TEXT
);`,
	},
	{
		Name: "create_index_audit_logs_action_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_audit_logs_action_created_at ON audit_logs (action, created_at);`,
	},
	{
		Name: "create_table_tipos_registro",
		SQL: `CREATE TABLE IF NOT EXISTS tipos_registro (
  id         UUID        PRIMARY KEY,
  nome       TEXT        NOT NULL UNIQUE,
  descricao  TEXT        NOT NULL DEFAULT '',
  ativo      BOOLEAN     NOT NULL DEFAULT true,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_registros",
		SQL: `CREATE TABLE IF NOT EXISTS registros (
  id                  UUID        PRIMARY KEY,
  titulo              TEXT        NOT NULL,
  tipo_registro       TEXT        NOT NULL,
  descricao           TEXT        NOT NULL DEFAULT '',
  codigo_numero       TEXT,
  data_registro       DATE        NOT NULL,
  autor_id            UUID        NOT NULL REFERENCES users (id),
  obra_id             UUID        NOT NULL REFERENCES obras (id),
  anexo_url           TEXT,
  anexo_pathname      TEXT,
  anexo_local_path    TEXT,
  anexo_nome_original TEXT,
  anexo_extensao      TEXT,
  anexo_tamanho       BIGINT      CHECK (anexo_tamanho >= 0),
  anexo_content_type  TEXT,
  anexo_hash          TEXT,
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT registros_anexo_single_location CHECK (anexo_url IS NULL OR anexo_local_path IS NULL)
);`,
	},
	{
		Name: "create_index_registros_obra_data",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_registros_obra_data ON registros (obra_id, data_registro DESC);`,
	},
	{
		Name: "create_index_registros_tipo",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_registros_tipo ON registros (tipo_registro);`,
	},
	{
		Name: "create_index_registros_autor",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_registros_autor ON registros (autor_id);`,
	},
}

// EnsureMigrated checks the sentinel table and runs every step when it is
// missing. Steps are idempotent, so a run interrupted halfway is safe to repeat.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With("component", "database", "db_host", dbHost)

	log.InfoContext(ctx, "db_migration_check", "status", "starting")

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.ErrorContext(ctx, "db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.InfoContext(ctx, "db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.InfoContext(ctx, "db_migration_start", "status", "in_progress", "steps", len(steps))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.ErrorContext(ctx, "db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.DebugContext(ctx, "db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.InfoContext(ctx, "db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
