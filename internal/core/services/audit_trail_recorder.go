package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/platform/config"
)

// housekeepingFields never count as changes.
var housekeepingFields = map[string]struct{}{
	"created_at":      {},
	"created_by":      {},
	"updated_at":      {},
	"updated_by":      {},
	"last_updated_at": {},
	"last_updated_by": {},
	"createdAt":       {},
	"createdBy":       {},
	"updatedAt":       {},
	"lastUpdatedAt":   {},
	"lastUpdatedBy":   {},
}

// auditTrailRecorder appends audit log records without ever failing the caller.
type auditTrailRecorder struct {
	BaseService
	writer    portsrepo.AuditLogWriter
	alerter   portssvc.OpsAlerter
	attempts  int
	baseDelay time.Duration

	mu        sync.RWMutex
	entities  map[string]domain.EntityClassification
	sensitive map[string]struct{}
}

// RecorderOption configures the audit trail recorder.
type RecorderOption func(*auditTrailRecorder)

// WithOpsAlerter notifies alerter whenever a record is lost.
func WithOpsAlerter(alerter portssvc.OpsAlerter) RecorderOption {
	return func(r *auditTrailRecorder) {
		r.alerter = alerter
	}
}

// WithRecorderClock overrides the recorder's clock.
func WithRecorderClock(now func() time.Time) RecorderOption {
	return func(r *auditTrailRecorder) {
		r.Now = now
	}
}

// NewAuditTrailRecorder creates the recorder. writer is used for post-commit records.
func NewAuditTrailRecorder(writer portsrepo.AuditLogWriter, cfg config.AuditTrailConfig, opts ...RecorderOption) portssvc.AuditTrailRecorder {
	r := &auditTrailRecorder{
		writer:    writer,
		attempts:  cfg.RetryAttempts,
		baseDelay: cfg.RetryBaseDelay,
		entities:  make(map[string]domain.EntityClassification),
		sensitive: make(map[string]struct{}, len(cfg.SensitiveFields)),
	}
	for _, f := range cfg.SensitiveFields {
		r.sensitive[f] = struct{}{}
	}
	for _, table := range cfg.FinancialEntities {
		r.entities[table] = domain.EntityClassification{Financial: true}
	}
	if r.attempts < 1 {
		r.attempts = 1
	}
	if r.baseDelay <= 0 {
		r.baseDelay = 50 * time.Millisecond
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ portssvc.AuditTrailRecorder = (*auditTrailRecorder)(nil)

// RegisterEntity declares how records of an entity table are classified.
func (r *auditTrailRecorder) RegisterEntity(table string, classification domain.EntityClassification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[table] = classification
}

// Record writes the record with bounded exponential-backoff retries.
func (r *auditTrailRecorder) Record(ctx context.Context, entry domain.AuditLogInput) {
	record, err := r.build(entry)
	if err != nil {
		r.escalate(ctx, entry, err)
		return
	}

	op := func() error {
		return r.writer.AppendAuditLog(ctx, record)
	}
	b := backoff.WithContext(backoff.WithMaxRetries(newRetryBackOff(r.baseDelay), uint64(r.attempts-1)), ctx)
	if err := backoff.Retry(op, b); err != nil {
		r.escalate(ctx, entry, err)
	}
}

// RecordInTx writes through the caller's transaction. The writer isolates the
// insert so a failure here leaves the business transaction usable.
func (r *auditTrailRecorder) RecordInTx(ctx context.Context, w portsrepo.AuditLogWriter, entry domain.AuditLogInput) {
	record, err := r.build(entry)
	if err != nil {
		r.escalate(ctx, entry, err)
		return
	}
	if err := w.AppendAuditLog(ctx, record); err != nil {
		r.escalate(ctx, entry, err)
	}
}

func (r *auditTrailRecorder) escalate(ctx context.Context, entry domain.AuditLogInput, err error) {
	r.GetLogger(ctx).Error("Audit trail write failed",
		slog.String("channel", "ops"),
		slog.String("entity_table", entry.EntityTable),
		slog.String("entity_id", entry.EntityID),
		slog.String("action", string(entry.Action)),
		slog.String("error", err.Error()),
	)
	if r.alerter != nil {
		r.alerter.AuditWriteFailed(ctx, entry, err)
	}
}

func (r *auditTrailRecorder) build(entry domain.AuditLogInput) (domain.AuditLogRecord, error) {
	if entry.EntityTable == "" || entry.EntityID == "" {
		return domain.AuditLogRecord{}, fmt.Errorf("audit entry requires entity table and id")
	}

	var changed []string
	if entry.Action == domain.ActionUpdate {
		var err error
		changed, err = changedFields(entry.Before, entry.After)
		if err != nil {
			return domain.AuditLogRecord{}, err
		}
	}

	record := domain.AuditLogRecord{
		RecordID:       uuid.NewString(),
		EntityTable:    entry.EntityTable,
		EntityID:       entry.EntityID,
		Action:         entry.Action,
		ActorID:        entry.ActorID,
		Before:         entry.Before,
		After:          entry.After,
		ChangedFields:  changed,
		Severity:       severityFor(entry),
		ComplianceTags: r.tagsFor(entry.EntityTable, changed),
		RecordedAt:     r.now().Truncate(time.Microsecond),
	}

	sum, err := checksum(record)
	if err != nil {
		return domain.AuditLogRecord{}, err
	}
	record.Checksum = sum
	return record, nil
}

func severityFor(entry domain.AuditLogInput) domain.AuditLogSeverity {
	if entry.SeverityOverride != "" {
		return entry.SeverityOverride
	}
	switch entry.Action {
	case domain.ActionCreate:
		return domain.AuditLow
	case domain.ActionUpdate:
		return domain.AuditMedium
	default:
		return domain.AuditHigh
	}
}

func (r *auditTrailRecorder) tagsFor(table string, changed []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	class := r.entities[table]
	var tags []string
	if class.Financial {
		tags = append(tags, domain.TagFinancial)
	}
	entitySensitive := make(map[string]struct{}, len(class.SensitiveFields))
	for _, f := range class.SensitiveFields {
		entitySensitive[f] = struct{}{}
	}
	for _, f := range changed {
		_, global := r.sensitive[f]
		_, local := entitySensitive[f]
		if global || local {
			tags = append(tags, domain.TagSensitiveField)
			break
		}
	}
	return tags
}

// changedFields returns the sorted keys whose JSON encoding differs between before and after.
func changedFields(before, after map[string]any) ([]string, error) {
	keys := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}

	var changed []string
	for k := range keys {
		if _, skip := housekeepingFields[k]; skip {
			continue
		}
		b, err := json.Marshal(before[k])
		if err != nil {
			return nil, fmt.Errorf("encode before.%s: %w", k, err)
		}
		a, err := json.Marshal(after[k])
		if err != nil {
			return nil, fmt.Errorf("encode after.%s: %w", k, err)
		}
		if string(a) != string(b) {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)
	return changed, nil
}

// checksum hashes the canonical JSON of the record with an empty checksum field.
func checksum(record domain.AuditLogRecord) (string, error) {
	record.Checksum = ""
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode audit record: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// VerifyAuditChecksum reports whether a stored record still matches its checksum.
func VerifyAuditChecksum(record domain.AuditLogRecord) bool {
	// stores may hand timestamps back in their session zone
	record.RecordedAt = record.RecordedAt.UTC()
	sum, err := checksum(record)
	return err == nil && sum == record.Checksum
}
