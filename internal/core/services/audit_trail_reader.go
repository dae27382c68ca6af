package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/dto"
	"github.com/SscSPs/posting_engine/internal/utils/pagination"
)

const (
	defaultAuditPageSize = 20
	maxAuditPageSize     = 100
)

type auditTrailReader struct {
	BaseService
	reader portsrepo.AuditLogReader
}

// NewAuditTrailReader creates the audit history service.
func NewAuditTrailReader(reader portsrepo.AuditLogReader) portssvc.AuditTrailReaderSvc {
	return &auditTrailReader{reader: reader}
}

var _ portssvc.AuditTrailReaderSvc = (*auditTrailReader)(nil)

// History returns one page of an entity's audit trail with every record's checksum re-verified.
func (s *auditTrailReader) History(ctx context.Context, entityTable, entityID string, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	if entityTable == "" || entityID == "" {
		return nil, apperrors.NewValidationError("entity table and id are required")
	}
	limit := pagination.ClampLimit(params.Limit, defaultAuditPageSize, maxAuditPageSize)

	records, next, err := s.reader.ListAuditLogs(ctx, entityTable, entityID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs",
			slog.String("entity_table", entityTable),
			slog.String("entity_id", entityID),
		)
		return nil, err
	}

	resp := &dto.ListAuditLogsResponse{
		EntityTable: entityTable,
		EntityID:    entityID,
		Records:     make([]dto.AuditLogResponse, len(records)),
		NextToken:   next,
	}
	tampered := 0
	for i, r := range records {
		valid := VerifyAuditChecksum(r)
		if !valid {
			tampered++
		}
		resp.Records[i] = dto.AuditLogResponse{
			RecordID:       r.RecordID,
			Action:         string(r.Action),
			ActorID:        r.ActorID,
			Before:         r.Before,
			After:          r.After,
			ChangedFields:  r.ChangedFields,
			Severity:       string(r.Severity),
			ComplianceTags: r.ComplianceTags,
			RecordedAt:     r.RecordedAt,
			ChecksumValid:  valid,
		}
	}
	if tampered > 0 {
		s.GetLogger(ctx).Warn("Audit records failed checksum verification",
			slog.String("entity_table", entityTable),
			slog.String("entity_id", entityID),
			slog.Int("count", tampered),
		)
	}
	return resp, nil
}
