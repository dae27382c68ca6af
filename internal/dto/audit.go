package dto

import "time"

// AuditRunQuery is the query string of an auditor run. Zero dates default to
// the last AuditChunkDays days and a zero cutoff to the configured aging cutoff.
type AuditRunQuery struct {
	From            time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To              time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	AgingCutoffDays int       `form:"agingCutoffDays" binding:"min=0"`
}

// ListAuditLogsParams pages through the audit trail of one entity.
type ListAuditLogsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// AuditLogResponse is one audit trail record. ChecksumValid is false when the
// stored record no longer matches the checksum taken when it was written.
type AuditLogResponse struct {
	RecordID       string         `json:"recordID"`
	Action         string         `json:"action"`
	ActorID        string         `json:"actorID"`
	Before         map[string]any `json:"before,omitempty"`
	After          map[string]any `json:"after,omitempty"`
	ChangedFields  []string       `json:"changedFields,omitempty"`
	Severity       string         `json:"severity"`
	ComplianceTags []string       `json:"complianceTags,omitempty"`
	RecordedAt     time.Time      `json:"recordedAt"`
	ChecksumValid  bool           `json:"checksumValid"`
}

// ListAuditLogsResponse is one page of an entity's audit trail.
type ListAuditLogsResponse struct {
	EntityTable string             `json:"entityTable"`
	EntityID    string             `json:"entityID"`
	Records     []AuditLogResponse `json:"records"`
	NextToken   *string            `json:"nextToken,omitempty"`
}
