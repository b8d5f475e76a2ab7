package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS submission_audit (
		id UUID PRIMARY KEY,
		actor_id TEXT NOT NULL,
		email TEXT NOT NULL,
		full_name TEXT NOT NULL,
		phase TEXT NOT NULL,
		outcome_kind TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_submission_audit_email ON submission_audit (email)`,
	`CREATE INDEX IF NOT EXISTS idx_submission_audit_created_at ON submission_audit (created_at DESC)`,
}

// RunMigrations applies the audit schema. Statements are idempotent.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		return nil
	}
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	logger.Info("audit migrations applied")
	return nil
}
