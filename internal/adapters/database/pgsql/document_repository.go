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
	"github.com/SscSPs/posting_engine/internal/models"
	"github.com/SscSPs/posting_engine/internal/utils/mapping"
)

const documentColumns = `document_type, document_id, document_number, document_date, due_date, party_id, currency_code, exchange_rate,
	total_amount, subtotal_amount, tax_amount, discount_amount, shipping_amount, paid_amount, status, locked, posted_by, posted_at`

// DocumentRepository writes source documents. The engine itself only reads and
// flags them inside ledger transactions; this is the provisioning side.
type DocumentRepository struct {
	BaseRepository
}

// NewDocumentRepository creates a new repository for source documents.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// SaveDocument inserts or replaces a document that has not been posted yet.
func (r *DocumentRepository) SaveDocument(ctx context.Context, doc domain.SourceDocument) error {
	m := mapping.ToModelSourceDocument(doc)
	query := `
		INSERT INTO source_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (document_type, document_id) DO UPDATE SET
			document_number = EXCLUDED.document_number,
			document_date = EXCLUDED.document_date,
			due_date = EXCLUDED.due_date,
			party_id = EXCLUDED.party_id,
			currency_code = EXCLUDED.currency_code,
			exchange_rate = EXCLUDED.exchange_rate,
			total_amount = EXCLUDED.total_amount,
			subtotal_amount = EXCLUDED.subtotal_amount,
			tax_amount = EXCLUDED.tax_amount,
			discount_amount = EXCLUDED.discount_amount,
			shipping_amount = EXCLUDED.shipping_amount,
			paid_amount = EXCLUDED.paid_amount,
			status = EXCLUDED.status
		WHERE NOT source_documents.locked;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.DocumentType, m.DocumentID, m.DocumentNumber, m.DocumentDate, m.DueDate, m.PartyID, m.CurrencyCode, m.ExchangeRate,
		m.Total, m.Subtotal, m.Tax, m.Discount, m.Shipping, m.Paid, m.Status, m.Locked, m.PostedBy, m.PostedAt,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("failed to save document %s %s", m.DocumentType, m.DocumentID))
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: document %s %s is locked", apperrors.ErrConflict, m.DocumentType, m.DocumentID)
	}
	return nil
}

// FindDocument reads a document without locking it.
func (r *DocumentRepository) FindDocument(ctx context.Context, documentType, documentID string) (*domain.SourceDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM source_documents WHERE document_type = $1 AND document_id = $2;`
	return loadDocument(ctx, r.Pool, query, documentType, documentID)
}

func scanDocument(row pgx.Row) (models.SourceDocument, error) {
	var m models.SourceDocument
	err := row.Scan(
		&m.DocumentType,
		&m.DocumentID,
		&m.DocumentNumber,
		&m.DocumentDate,
		&m.DueDate,
		&m.PartyID,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.Total,
		&m.Subtotal,
		&m.Tax,
		&m.Discount,
		&m.Shipping,
		&m.Paid,
		&m.Status,
		&m.Locked,
		&m.PostedBy,
		&m.PostedAt,
	)
	return m, err
}

func loadDocument(ctx context.Context, q querier, query, documentType, documentID string) (*domain.SourceDocument, error) {
	m, err := scanDocument(q.QueryRow(ctx, query, documentType, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %s", apperrors.ErrDocumentNotFound, documentType, documentID)
		}
		return nil, translateError(err, fmt.Sprintf("failed to load document %s %s", documentType, documentID))
	}
	doc := mapping.ToDomainSourceDocument(m)
	return &doc, nil
}

// findDocumentForUpdate row-locks the document; concurrent posters of the same
// document queue here.
func findDocumentForUpdate(ctx context.Context, tx pgx.Tx, documentType, documentID string) (*domain.SourceDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM source_documents
		WHERE document_type = $1 AND document_id = $2
		FOR UPDATE;
	`
	return loadDocument(ctx, tx, query, documentType, documentID)
}

func setDocumentPosting(ctx context.Context, tx pgx.Tx, documentType, documentID string, status domain.DocumentStatus, locked bool, postedBy *string, postedAt *time.Time) error {
	query := `
		UPDATE source_documents
		SET status = $3, locked = $4, posted_by = $5, posted_at = $6
		WHERE document_type = $1 AND document_id = $2;
	`
	ct, err := tx.Exec(ctx, query, documentType, documentID, string(status), locked, postedBy, postedAt)
	if err != nil {
		return translateError(err, fmt.Sprintf("failed to update document %s %s", documentType, documentID))
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrDocumentNotFound, documentType, documentID)
	}
	return nil
}
