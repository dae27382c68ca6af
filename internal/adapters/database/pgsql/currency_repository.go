package pgsql

import (
	"context"
	"errors"
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

const currencyColumns = `currency_code, symbol, name, decimal_places, is_base, created_at, created_by, last_updated_at, last_updated_by`

// CurrencyRepository stores the currency registry.
type CurrencyRepository struct {
	BaseRepository
}

// NewCurrencyRepository creates a new repository for currency data.
func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRepositoryFacade = (*CurrencyRepository)(nil)

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.CurrencyCode,
		&m.Symbol,
		&m.Name,
		&m.DecimalPlaces,
		&m.IsBase,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCurrency inserts a new currency. New currencies never start as the base.
func (r *CurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CurrencyCode, m.Symbol, m.Name, m.DecimalPlaces,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, fmt.Sprintf("failed to save currency %s", m.CurrencyCode))
}

// SetBaseCurrency clears the old base before flagging the new one, inside one
// transaction, so the partial unique index on is_base never sees two base rows.
func (r *CurrencyRepository) SetBaseCurrency(ctx context.Context, currencyCode string, actorID string, now time.Time) (err error) {
	tx, err := r.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	var locked string
	err = tx.QueryRow(ctx, `SELECT currency_code FROM currencies WHERE currency_code = $1 FOR UPDATE;`, currencyCode).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("currency " + currencyCode)
		}
		return translateError(err, fmt.Sprintf("failed to lock currency %s", currencyCode))
	}

	clearBase := `UPDATE currencies SET is_base = FALSE, last_updated_at = $2, last_updated_by = $3 WHERE is_base AND currency_code <> $1;`
	if _, err = tx.Exec(ctx, clearBase, currencyCode, now, actorID); err != nil {
		return translateError(err, "failed to clear base currency")
	}
	setBase := `UPDATE currencies SET is_base = TRUE, last_updated_at = $2, last_updated_by = $3 WHERE currency_code = $1 AND NOT is_base;`
	if _, err = tx.Exec(ctx, setBase, currencyCode, now, actorID); err != nil {
		return translateError(err, fmt.Sprintf("failed to set base currency %s", currencyCode))
	}
	return r.Commit(ctx, tx)
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *CurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_code = $1;`
	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyCode))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("currency %s", currencyCode))
	}
	currency := mapping.ToDomainCurrency(m)
	return &currency, nil
}

// FindBaseCurrency retrieves the single base currency.
func (r *CurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE is_base;`
	m, err := scanCurrency(r.Pool.QueryRow(ctx, query))
	if err != nil {
		return nil, translateError(err, "base currency")
	}
	currency := mapping.ToDomainCurrency(m)
	return &currency, nil
}

// ListCurrencies retrieves all currencies.
func (r *CurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY currency_code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "failed to query currencies")
	}
	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, translateError(err, "failed to scan currencies")
	}
	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

// baseCurrencyCode reads the base currency inside an existing transaction.
func baseCurrencyCode(ctx context.Context, q querier) (string, error) {
	var code string
	if err := q.QueryRow(ctx, `SELECT currency_code FROM currencies WHERE is_base;`).Scan(&code); err != nil {
		return "", translateError(err, "base currency")
	}
	return code, nil
}
