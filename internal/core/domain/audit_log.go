package domain

import "time"

// AuditAction is the kind of mutation recorded in the audit trail.
type AuditAction string

const (
	ActionCreate AuditAction = "CREATE"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
	ActionCancel AuditAction = "CANCEL"
)

// AuditLogSeverity ranks how much scrutiny a mutation deserves.
type AuditLogSeverity string

const (
	AuditLow    AuditLogSeverity = "LOW"
	AuditMedium AuditLogSeverity = "MEDIUM"
	AuditHigh   AuditLogSeverity = "HIGH"
)

// Compliance tags attached to audit log records.
const (
	TagFinancial      = "FINANCIAL"
	TagSensitiveField = "SENSITIVE_FIELD"
)

// EntityClassification is supplied when an entity table is registered with
// the recorder and drives its compliance tagging.
type EntityClassification struct {
	Financial       bool
	SensitiveFields []string
}

// AuditLogInput describes one mutation to record.
type AuditLogInput struct {
	EntityTable      string
	EntityID         string
	Action           AuditAction
	ActorID          string
	Before           map[string]any
	After            map[string]any
	SeverityOverride AuditLogSeverity
}

// AuditLogRecord is an immutable audit-trail row.
type AuditLogRecord struct {
	RecordID       string           `json:"recordID"`
	EntityTable    string           `json:"entityTable"`
	EntityID       string           `json:"entityID"`
	Action         AuditAction      `json:"action"`
	ActorID        string           `json:"actorID"`
	Before         map[string]any   `json:"before,omitempty"`
	After          map[string]any   `json:"after,omitempty"`
	ChangedFields  []string         `json:"changedFields,omitempty"`
	Severity       AuditLogSeverity `json:"severity"`
	ComplianceTags []string         `json:"complianceTags,omitempty"`
	Checksum       string           `json:"checksum"`
	RecordedAt     time.Time        `json:"recordedAt"`
}
