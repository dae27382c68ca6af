package services

import (
	"context"

	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	"github.com/SscSPs/posting_engine/internal/dto"
)

// LedgerAuditorSvc runs the read-only invariant checks over the ledger.
type LedgerAuditorSvc interface {
	Run(ctx context.Context, window domain.DateWindow, agingCutoffDays int) (*domain.AuditReport, error)
}

// AuditTrailRecorder logs mutations. Neither method reports failures to the caller.
type AuditTrailRecorder interface {
	// Record writes the record after the business transaction committed, retrying on failure.
	Record(ctx context.Context, entry domain.AuditLogInput)

	// RecordInTx writes the record through the business transaction's writer.
	RecordInTx(ctx context.Context, w portsrepo.AuditLogWriter, entry domain.AuditLogInput)

	// RegisterEntity declares how records of an entity table are classified.
	RegisterEntity(table string, classification domain.EntityClassification)
}

// AuditTrailReaderSvc pages through the recorded history of an entity.
type AuditTrailReaderSvc interface {
	History(ctx context.Context, entityTable, entityID string, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error)
}

// OpsAlerter is notified when the audit trail could not be written.
type OpsAlerter interface {
	AuditWriteFailed(ctx context.Context, entry domain.AuditLogInput, err error)
}
