package mapping

import (
	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/SscSPs/posting_engine/internal/models"
)

// ToModelAuditLog converts a domain AuditLogRecord to a model AuditLog
func ToModelAuditLog(d domain.AuditLogRecord) models.AuditLog {
	return models.AuditLog{
		RecordID:       d.RecordID,
		EntityTable:    d.EntityTable,
		EntityID:       d.EntityID,
		Action:         string(d.Action),
		ActorID:        d.ActorID,
		Before:         d.Before,
		After:          d.After,
		ChangedFields:  d.ChangedFields,
		Severity:       string(d.Severity),
		ComplianceTags: d.ComplianceTags,
		Checksum:       d.Checksum,
		RecordedAt:     d.RecordedAt,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLogRecord
func ToDomainAuditLog(m models.AuditLog) domain.AuditLogRecord {
	return domain.AuditLogRecord{
		RecordID:       m.RecordID,
		EntityTable:    m.EntityTable,
		EntityID:       m.EntityID,
		Action:         domain.AuditAction(m.Action),
		ActorID:        m.ActorID,
		Before:         m.Before,
		After:          m.After,
		ChangedFields:  m.ChangedFields,
		Severity:       domain.AuditLogSeverity(m.Severity),
		ComplianceTags: m.ComplianceTags,
		Checksum:       m.Checksum,
		RecordedAt:     m.RecordedAt,
	}
}
