package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/posting_engine/internal/models"
	"github.com/SscSPs/posting_engine/internal/utils/mapping"
	"github.com/SscSPs/posting_engine/internal/utils/pagination"
)

const auditLogColumns = `record_id, entity_table, entity_id, action, actor_id, before_state, after_state, changed_fields,
	severity, compliance_tags, checksum, recorded_at`

// AuditLogRepository appends to the audit trail outside a ledger transaction.
type AuditLogRepository struct {
	BaseRepository
}

// NewAuditLogRepository creates a new repository for audit log records.
func NewAuditLogRepository(pool *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogRepositoryFacade = (*AuditLogRepository)(nil)

// AppendAuditLog inserts one immutable record.
func (r *AuditLogRepository) AppendAuditLog(ctx context.Context, record domain.AuditLogRecord) error {
	return appendAuditLog(ctx, r.Pool, record)
}

// ListAuditLogs returns one page of the records of an entity, oldest first.
// Pages are keyed on (recorded_at, record_id) so concurrent appends never shift them.
func (r *AuditLogRepository) ListAuditLogs(ctx context.Context, entityTable, entityID string, limit int, nextToken *string) ([]domain.AuditLogRecord, *string, error) {
	if limit <= 0 {
		return nil, nil, apperrors.NewValidationError("limit must be positive")
	}

	args := []any{entityTable, entityID}
	query := `
		SELECT ` + auditLogColumns + `
		FROM audit_logs
		WHERE entity_table = $1 AND entity_id = $2`
	if nextToken != nil {
		afterAt, afterID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(err.Error())
		}
		args = append(args, afterAt, afterID)
		query += ` AND (recorded_at, record_id) > ($3, $4)`
	}
	// one extra row tells us whether another page exists
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY recorded_at, record_id LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "failed to query audit logs")
	}
	modelLogs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditLog, error) {
		var m models.AuditLog
		err := row.Scan(
			&m.RecordID,
			&m.EntityTable,
			&m.EntityID,
			&m.Action,
			&m.ActorID,
			&m.Before,
			&m.After,
			&m.ChangedFields,
			&m.Severity,
			&m.ComplianceTags,
			&m.Checksum,
			&m.RecordedAt,
		)
		return m, err
	})
	if err != nil {
		return nil, nil, translateError(err, "failed to scan audit logs")
	}

	var next *string
	if len(modelLogs) > limit {
		modelLogs = modelLogs[:limit]
		last := modelLogs[limit-1]
		token := pagination.EncodeToken(last.RecordedAt, last.RecordID)
		next = &token
	}

	out := make([]domain.AuditLogRecord, len(modelLogs))
	for i, m := range modelLogs {
		out[i] = mapping.ToDomainAuditLog(m)
	}
	return out, next, nil
}

func appendAuditLog(ctx context.Context, q querier, record domain.AuditLogRecord) error {
	m := mapping.ToModelAuditLog(record)
	query := `INSERT INTO audit_logs (` + auditLogColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := q.Exec(ctx, query,
		m.RecordID, m.EntityTable, m.EntityID, m.Action, m.ActorID, m.Before, m.After,
		m.ChangedFields, m.Severity, m.ComplianceTags, m.Checksum, m.RecordedAt,
	)
	return translateError(err, fmt.Sprintf("failed to append audit log for %s %s", m.EntityTable, m.EntityID))
}

// appendAuditLogSavepoint writes under a savepoint so a failed insert leaves the
// surrounding ledger transaction usable.
func appendAuditLogSavepoint(ctx context.Context, tx pgx.Tx, record domain.AuditLogRecord) error {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return translateError(err, "failed to open audit savepoint")
	}
	if err := appendAuditLog(ctx, sp, record); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return translateError(sp.Commit(ctx), "failed to release audit savepoint")
}
