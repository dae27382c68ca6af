package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/posting_engine/internal/models"
	"github.com/SscSPs/posting_engine/internal/utils/mapping"
)

const ruleColumns = `rule_id, document_type, rule_name, amount_field, debit_account_id, credit_account_id, priority, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PostingRuleRepository stores posting rules.
type PostingRuleRepository struct {
	BaseRepository
}

// NewPostingRuleRepository creates a new repository for posting rules.
func NewPostingRuleRepository(pool *pgxpool.Pool) *PostingRuleRepository {
	return &PostingRuleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PostingRuleRepositoryFacade = (*PostingRuleRepository)(nil)

func scanRule(row pgx.Row) (models.PostingRule, error) {
	var m models.PostingRule
	err := row.Scan(
		&m.RuleID,
		&m.DocumentType,
		&m.RuleName,
		&m.AmountField,
		&m.DebitAccountID,
		&m.CreditAccountID,
		&m.Priority,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveRule inserts a rule. The (document_type, rule_name) index rejects duplicates.
func (r *PostingRuleRepository) SaveRule(ctx context.Context, rule domain.PostingRule) error {
	m := mapping.ToModelPostingRule(rule)
	query := `
		INSERT INTO posting_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RuleID, m.DocumentType, m.RuleName, m.AmountField, m.DebitAccountID, m.CreditAccountID,
		m.Priority, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("failed to save posting rule %s/%s", m.DocumentType, m.RuleName))
}

// FindActiveRulesByDocumentType returns active rules by priority, then name.
func (r *PostingRuleRepository) FindActiveRulesByDocumentType(ctx context.Context, documentType string) ([]domain.PostingRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM posting_rules
		WHERE document_type = $1 AND is_active
		ORDER BY priority, rule_name;
	`
	rows, err := r.Pool.Query(ctx, query, documentType)
	if err != nil {
		return nil, translateError(err, "failed to query posting rules")
	}
	modelRules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PostingRule, error) {
		return scanRule(row)
	})
	if err != nil {
		return nil, translateError(err, "failed to scan posting rules")
	}
	return mapping.ToDomainPostingRuleSlice(modelRules), nil
}

// FindRuleByID retrieves a rule by its identifier.
func (r *PostingRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.PostingRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM posting_rules WHERE rule_id = $1;`
	m, err := scanRule(r.Pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("posting rule %s", ruleID))
	}
	rule := mapping.ToDomainPostingRule(m)
	return &rule, nil
}

// DeactivateRule marks a rule inactive.
func (r *PostingRuleRepository) DeactivateRule(ctx context.Context, ruleID string, actorID string, now time.Time) error {
	query := `
		UPDATE posting_rules
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE rule_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, ruleID, now, actorID)
	if err != nil {
		return translateError(err, fmt.Sprintf("failed to deactivate posting rule %s", ruleID))
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("posting rule " + ruleID)
	}
	return nil
}
