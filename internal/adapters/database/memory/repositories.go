package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/SscSPs/posting_engine/internal/utils/pagination"
)

// --- accounts ---

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	a, ok := s.committed().accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return &a, nil
}

func (s *Store) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	st := s.committed()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := st.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

// --- currencies ---

func (s *Store) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	c, ok := s.committed().currencies[currencyCode]
	if !ok {
		return nil, apperrors.NewNotFoundError("currency " + currencyCode)
	}
	return &c, nil
}

func (s *Store) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	for _, c := range s.committed().currencies {
		if c.IsBase {
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("base currency")
}

func (s *Store) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	st := s.committed()
	out := make([]domain.Currency, 0, len(st.currencies))
	for _, c := range st.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

func (s *Store) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	return s.update(func(st *state) error {
		if _, exists := st.currencies[currency.CurrencyCode]; exists {
			return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, currency.CurrencyCode)
		}
		currency.IsBase = false
		st.currencies[currency.CurrencyCode] = currency
		return nil
	})
}

func (s *Store) SetBaseCurrency(ctx context.Context, currencyCode string, actorID string, now time.Time) error {
	return s.update(func(st *state) error {
		if _, ok := st.currencies[currencyCode]; !ok {
			return apperrors.NewNotFoundError("currency " + currencyCode)
		}
		for code, c := range st.currencies {
			isBase := code == currencyCode
			if c.IsBase != isBase {
				c.IsBase = isBase
				c.LastUpdatedAt = now
				c.LastUpdatedBy = actorID
				st.currencies[code] = c
			}
		}
		return nil
	})
}

// --- exchange rates ---

func (s *Store) FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	var best *domain.ExchangeRate
	cutoff := domain.TruncateDay(asOf)
	for _, r := range s.committed().rates {
		if r.FromCurrencyCode != fromCurrencyCode || r.ToCurrencyCode != toCurrencyCode || r.DateEffective.After(cutoff) {
			continue
		}
		if best == nil || r.DateEffective.After(best.DateEffective) {
			rate := r
			best = &rate
		}
	}
	if best == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("exchange rate %s/%s", fromCurrencyCode, toCurrencyCode))
	}
	return best, nil
}

// SaveExchangeRate upserts per (from, to, date).
func (s *Store) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	return s.update(func(st *state) error {
		rate.DateEffective = domain.TruncateDay(rate.DateEffective)
		for i, r := range st.rates {
			if r.FromCurrencyCode == rate.FromCurrencyCode && r.ToCurrencyCode == rate.ToCurrencyCode && r.DateEffective.Equal(rate.DateEffective) {
				rate.ExchangeRateID = r.ExchangeRateID
				rate.CreatedAt, rate.CreatedBy = r.CreatedAt, r.CreatedBy
				st.rates[i] = rate
				return nil
			}
		}
		st.rates = append(st.rates, rate)
		return nil
	})
}

// --- journal ---

func (s *Store) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	e, ok := s.committed().entries[entryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("journal entry " + entryID)
	}
	out := cloneEntry(e)
	return &out, nil
}

// --- posting rules ---

func (s *Store) FindActiveRulesByDocumentType(ctx context.Context, documentType string) ([]domain.PostingRule, error) {
	var out []domain.PostingRule
	for _, r := range s.committed().rules {
		if r.DocumentType == documentType && r.IsActive {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].RuleName < out[j].RuleName
	})
	return out, nil
}

func (s *Store) FindRuleByID(ctx context.Context, ruleID string) (*domain.PostingRule, error) {
	r, ok := s.committed().rules[ruleID]
	if !ok {
		return nil, apperrors.NewNotFoundError("posting rule " + ruleID)
	}
	return &r, nil
}

func (s *Store) SaveRule(ctx context.Context, rule domain.PostingRule) error {
	return s.update(func(st *state) error {
		for _, r := range st.rules {
			if r.DocumentType == rule.DocumentType && r.RuleName == rule.RuleName {
				return fmt.Errorf("%w: %s/%s", apperrors.ErrDuplicateRule, rule.DocumentType, rule.RuleName)
			}
		}
		st.rules[rule.RuleID] = rule
		return nil
	})
}

func (s *Store) DeactivateRule(ctx context.Context, ruleID string, actorID string, now time.Time) error {
	return s.update(func(st *state) error {
		r, ok := st.rules[ruleID]
		if !ok {
			return apperrors.NewNotFoundError("posting rule " + ruleID)
		}
		r.IsActive = false
		r.LastUpdatedAt = now
		r.LastUpdatedBy = actorID
		st.rules[ruleID] = r
		return nil
	})
}

// --- audit log ---

func (s *Store) AppendAuditLog(ctx context.Context, record domain.AuditLogRecord) error {
	if err := s.auditErr(); err != nil {
		return err
	}
	return s.update(func(st *state) error {
		st.auditLogs = append(st.auditLogs, record)
		return nil
	})
}

func (s *Store) ListAuditLogs(ctx context.Context, entityTable, entityID string, limit int, nextToken *string) ([]domain.AuditLogRecord, *string, error) {
	if limit <= 0 {
		return nil, nil, apperrors.NewValidationError("limit must be positive")
	}
	var afterAt time.Time
	var afterID string
	if nextToken != nil {
		var err error
		afterAt, afterID, err = pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(err.Error())
		}
	}

	var matched []domain.AuditLogRecord
	for _, r := range s.committed().auditLogs {
		if r.EntityTable == entityTable && r.EntityID == entityID {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].RecordedAt.Equal(matched[j].RecordedAt) {
			return matched[i].RecordedAt.Before(matched[j].RecordedAt)
		}
		return matched[i].RecordID < matched[j].RecordID
	})

	out := make([]domain.AuditLogRecord, 0, limit)
	for _, r := range matched {
		if nextToken != nil && (r.RecordedAt.Before(afterAt) || (r.RecordedAt.Equal(afterAt) && r.RecordID <= afterID)) {
			continue
		}
		if len(out) == limit {
			last := out[len(out)-1]
			token := pagination.EncodeToken(last.RecordedAt, last.RecordID)
			return out, &token, nil
		}
		out = append(out, r)
	}
	return out, nil, nil
}
