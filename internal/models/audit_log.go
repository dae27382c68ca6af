package models

import "time"

// AuditLog is a row of the append-only audit_logs table. Before and After are JSONB.
type AuditLog struct {
	RecordID       string         `db:"record_id"`
	EntityTable    string         `db:"entity_table"`
	EntityID       string         `db:"entity_id"`
	Action         string         `db:"action"`
	ActorID        string         `db:"actor_id"`
	Before         map[string]any `db:"before_state"`
	After          map[string]any `db:"after_state"`
	ChangedFields  []string       `db:"changed_fields"`
	Severity       string         `db:"severity"`
	ComplianceTags []string       `db:"compliance_tags"`
	Checksum       string         `db:"checksum"`
	RecordedAt     time.Time      `db:"recorded_at"`
}
