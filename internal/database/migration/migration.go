package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id                   UUID        PRIMARY KEY,
  title                TEXT        NOT NULL,
  description          TEXT        NOT NULL DEFAULT '',
  file_name            TEXT        NOT NULL,
  file_type            TEXT        NOT NULL,
  file_size            BIGINT      NOT NULL CHECK (file_size >= 0),
  file_location        TEXT        NOT NULL,
  subject              TEXT        NOT NULL,
  document_type        TEXT        NOT NULL CHECK (document_type IN ('assignment', 'notes', 'project', 'thesis', 'other')),
  year                 TEXT        NOT NULL,
  branch               TEXT        NOT NULL,
  status               TEXT        NOT NULL DEFAULT 'submitted' CHECK (status IN ('submitted', 'approved', 'rejected')),
  professor_comment    TEXT        NOT NULL DEFAULT '',
  reviewer_id          TEXT,
  reviewer_name        TEXT,
  reviewer_email       TEXT,
  reviewer_role        TEXT,
  reviewer_roll_number TEXT,
  reviewed_at          TIMESTAMPTZ,
  uploader_id          TEXT        NOT NULL,
  uploader_name        TEXT        NOT NULL,
  uploader_email       TEXT        NOT NULL DEFAULT '',
  uploader_roll_number TEXT        NOT NULL DEFAULT '',
  uploader_role        TEXT        NOT NULL DEFAULT 'student',
  created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT documents_review_consistency CHECK (
    (status = 'submitted' AND reviewer_id IS NULL AND reviewed_at IS NULL)
    OR (status <> 'submitted' AND reviewer_id IS NOT NULL AND reviewed_at IS NOT NULL)
  ),
  CONSTRAINT documents_rejection_comment CHECK (status <> 'rejected' OR btrim(professor_comment) <> '')
);`,
	},
	{
		Name: "create_index_documents_subject",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_subject ON documents (subject);`,
	},
	{
		Name: "create_index_documents_year",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_year ON documents (year);`,
	},
	{
		Name: "create_index_documents_uploader_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_uploader_id ON documents (uploader_id);`,
	},
	{
		Name: "create_index_documents_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_status ON documents (status);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
	{
		Name: "create_index_documents_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents (updated_at DESC);`,
	},
	{
		Name: "create_table_notifications",
		SQL: `CREATE TABLE IF NOT EXISTS notifications (
  id             UUID        PRIMARY KEY,
  seq            BIGSERIAL   NOT NULL UNIQUE,
  recipient_id   TEXT        NOT NULL,
  type           TEXT        NOT NULL CHECK (type IN ('approval', 'rejection', 'new_document', 'comment')),
  message        TEXT        NOT NULL,
  document_id    UUID,
  document_title TEXT,
  read           BOOLEAN     NOT NULL DEFAULT FALSE,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_notifications_recipient",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications (recipient_id, created_at DESC, seq DESC);`,
	},
	{
		Name: "create_index_notifications_unread",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications (recipient_id) WHERE NOT read;`,
	},
}

// sentinelQuery reports whether both tables already exist.
const sentinelQuery = `SELECT to_regclass('public.documents') IS NOT NULL AND to_regclass('public.notifications') IS NOT NULL`

// EnsureMigrated checks whether the schema exists and runs every step if it does not.
// Steps are idempotent, so a partially applied schema is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel tables: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"), zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
