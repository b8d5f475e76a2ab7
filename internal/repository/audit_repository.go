package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
)

// AuditRepository persists staff submission audit records.
type AuditRepository interface {
	Record(ctx context.Context, audit *domain.SubmissionAudit) error
	ListRecent(ctx context.Context, limit int) ([]domain.SubmissionAudit, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Record(ctx context.Context, audit *domain.SubmissionAudit) error {
	const query = `
        INSERT INTO submission_audit (id, actor_id, email, full_name, phase, outcome_kind, message)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		audit.ID,
		audit.ActorID,
		audit.Email,
		audit.FullName,
		audit.Phase,
		audit.OutcomeKind,
		audit.Message,
	).Scan(&audit.CreatedAt)
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]domain.SubmissionAudit, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, actor_id, email, full_name, phase, outcome_kind, message, created_at
        FROM submission_audit
        ORDER BY created_at DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var audits []domain.SubmissionAudit
	for rows.Next() {
		var a domain.SubmissionAudit
		if err := rows.Scan(&a.ID, &a.ActorID, &a.Email, &a.FullName, &a.Phase, &a.OutcomeKind, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		audits = append(audits, a)
	}
	return audits, rows.Err()
}
