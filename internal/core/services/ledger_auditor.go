package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
)

// auditCategories is the fixed order in which checks are reported.
var auditCategories = []domain.AuditCategory{
	domain.CategoryEntryBalance,
	domain.CategoryTrialBalance,
	domain.CategoryOrphanDocuments,
	domain.CategoryMissingReferences,
	domain.CategoryInactiveAccounts,
	domain.CategoryFixedAssets,
	domain.CategoryCreditLimits,
	domain.CategoryReceivablesAging,
	domain.CategoryExchangeRates,
	domain.CategoryAuditTrail,
	domain.CategoryAccountHierarchy,
}

// Summary count keys.
const (
	SummaryEntriesChecked  = "entries_checked"
	SummaryTrialLines      = "trial_balance_lines"
	SummaryAccountsChecked = "accounts_checked"
	SummaryReceivablesAged = "receivables_aged"
	SummaryAgingCutoffDays = "aging_cutoff_days"
	SummaryWindowChunks    = "window_chunks"
	SummaryFindings        = "findings"
)

// ledgerAuditor runs read-only invariant checks and reports findings. It never repairs data.
type ledgerAuditor struct {
	BaseService
	snapshotter portsrepo.AuditSnapshotter
	policy      domain.LedgerPolicy
	docTypes    []domain.DocumentTypeSpec
}

// NewLedgerAuditor creates a new LedgerAuditorSvc.
func NewLedgerAuditor(snapshotter portsrepo.AuditSnapshotter, policy domain.LedgerPolicy, docTypes []domain.DocumentTypeSpec) portssvc.LedgerAuditorSvc {
	return &ledgerAuditor{snapshotter: snapshotter, policy: policy, docTypes: docTypes}
}

var _ portssvc.LedgerAuditorSvc = (*ledgerAuditor)(nil)

// reportBuilder accumulates findings across snapshots.
type reportBuilder struct {
	findings []domain.AuditFinding
	seen     map[string]struct{}
	failed   map[domain.AuditCategory]struct{}
	counts   map[string]int
}

func newReportBuilder() *reportBuilder {
	return &reportBuilder{
		seen:   make(map[string]struct{}),
		failed: make(map[domain.AuditCategory]struct{}),
		counts: make(map[string]int),
	}
}

func (b *reportBuilder) add(f domain.AuditFinding) {
	if _, dup := b.seen[f.FindingID]; dup {
		return
	}
	b.seen[f.FindingID] = struct{}{}
	b.failed[f.Category] = struct{}{}
	b.findings = append(b.findings, f)
}

// probe turns a probe error into a finding when the probed subsystem is missing.
// It returns false when the check cannot continue and a non-nil error only for
// infrastructure failures.
func (b *reportBuilder) probe(category domain.AuditCategory, probeRef string, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrSubsystemUnavailable) {
		b.add(domain.AuditFinding{
			FindingID:   fmt.Sprintf("%s:unavailable", category),
			Category:    category,
			Severity:    domain.SeverityCode,
			ProbeRef:    probeRef,
			Description: fmt.Sprintf("check %s could not run: %v", category, err),
			Remediation: "Install or enable the subsystem this check reads, then re-run the audit.",
		})
		return false, nil
	}
	return false, fmt.Errorf("probe %s: %w", probeRef, err)
}

// Run executes every check over the window and returns the report. Data problems
// become findings; only infrastructure failures are returned as errors.
func (s *ledgerAuditor) Run(ctx context.Context, window domain.DateWindow, agingCutoffDays int) (*domain.AuditReport, error) {
	if window.To.Before(window.From) {
		return nil, apperrors.NewValidationError("audit window ends before it starts")
	}
	if agingCutoffDays <= 0 {
		agingCutoffDays = s.policy.AgingCutoffDays
	}
	logger := s.GetLogger(ctx).With(
		slog.String("window_from", window.From.Format("2006-01-02")),
		slog.String("window_to", window.To.Format("2006-01-02")),
	)

	b := newReportBuilder()
	chunks := window.Chunks(s.policy.AuditChunkDays)
	trial := domain.TrialBalanceTotals{}

	for i, chunk := range chunks {
		err := s.snapshotter.WithinSnapshot(ctx, func(ctx context.Context, snap portsrepo.AuditSnapshot) error {
			chunkTrial, err := s.runWindowChecks(ctx, snap, chunk, b)
			if err != nil {
				return err
			}
			trial.TotalDebit = trial.TotalDebit.Add(chunkTrial.TotalDebit)
			trial.TotalCredit = trial.TotalCredit.Add(chunkTrial.TotalCredit)
			trial.LineCount += chunkTrial.LineCount

			if i == 0 {
				return s.runGlobalChecks(ctx, snap, window, agingCutoffDays, b)
			}
			return nil
		})
		if err != nil {
			logger.Error("Ledger audit aborted", slog.String("error", err.Error()))
			return nil, fmt.Errorf("audit of %s..%s failed: %w", chunk.From.Format("2006-01-02"), chunk.To.Format("2006-01-02"), err)
		}
	}

	s.checkTrialBalance(trial, window, b)
	b.counts[SummaryTrialLines] = trial.LineCount
	b.counts[SummaryWindowChunks] = len(chunks)
	b.counts[SummaryAgingCutoffDays] = agingCutoffDays
	b.counts[SummaryFindings] = len(b.findings)

	report := &domain.AuditReport{
		Window:           window,
		TotalChecks:      len(auditCategories),
		PassedCategories: []domain.AuditCategory{},
		FailedCategories: []domain.AuditCategory{},
		Findings:         b.findings,
		SummaryCounts:    b.counts,
		GeneratedAt:      s.now(),
	}
	if report.Findings == nil {
		report.Findings = []domain.AuditFinding{}
	}
	for _, c := range auditCategories {
		if _, failed := b.failed[c]; failed {
			report.FailedCategories = append(report.FailedCategories, c)
		} else {
			report.PassedCategories = append(report.PassedCategories, c)
		}
	}

	logger.Info("Ledger audit completed",
		slog.Int("findings", len(report.Findings)),
		slog.Int("failed_categories", len(report.FailedCategories)))
	return report, nil
}

// runWindowChecks runs the checks scoped to entries and documents dated within chunk.
func (s *ledgerAuditor) runWindowChecks(ctx context.Context, snap portsrepo.AuditSnapshot, chunk domain.DateWindow, b *reportBuilder) (domain.TrialBalanceTotals, error) {
	totals, err := snap.EntryTotals(ctx, chunk)
	if ok, err := b.probe(domain.CategoryEntryBalance, "EntryTotals", err); err != nil {
		return domain.TrialBalanceTotals{}, err
	} else if ok {
		b.counts[SummaryEntriesChecked] += len(totals)
		for _, t := range totals {
			s.checkEntryBalance(t, b)
		}
	}

	trial, err := snap.TrialBalance(ctx, chunk)
	if ok, err := b.probe(domain.CategoryTrialBalance, "TrialBalance", err); err != nil {
		return domain.TrialBalanceTotals{}, err
	} else if !ok {
		trial = domain.TrialBalanceTotals{}
	}

	orphans, err := snap.PostedDocumentsWithoutEntry(ctx, chunk)
	if ok, err := b.probe(domain.CategoryOrphanDocuments, "PostedDocumentsWithoutEntry", err); err != nil {
		return domain.TrialBalanceTotals{}, err
	} else if ok {
		for _, doc := range orphans {
			b.add(domain.AuditFinding{
				FindingID:   fmt.Sprintf("%s:%s:%s", domain.CategoryOrphanDocuments, doc.DocumentType, doc.DocumentID),
				Category:    domain.CategoryOrphanDocuments,
				Severity:    domain.SeverityData,
				ProbeRef:    fmt.Sprintf("PostedDocumentsWithoutEntry:document_type=%s,document_id=%s", doc.DocumentType, doc.DocumentID),
				Description: fmt.Sprintf("%s %s (%s) is posted but has no active journal entry", doc.DocumentType, doc.DocumentNumber, doc.DocumentID),
				Remediation: "Reverse the document's posting status or re-post it through the journal poster.",
			})
		}
	}

	var partyRequired []string
	for _, spec := range s.docTypes {
		if spec.RequiresParty {
			partyRequired = append(partyRequired, spec.DocumentType)
		}
	}
	missing, err := snap.MissingReferences(ctx, chunk, partyRequired)
	if ok, err := b.probe(domain.CategoryMissingReferences, "MissingReferences", err); err != nil {
		return domain.TrialBalanceTotals{}, err
	} else if ok {
		for _, m := range missing {
			desc := fmt.Sprintf("%s %s has no %s", m.Table, m.RecordID, m.Column)
			if m.Value != "" {
				desc = fmt.Sprintf("%s %s references missing %s %s", m.Table, m.RecordID, m.Column, m.Value)
			}
			b.add(domain.AuditFinding{
				FindingID:   fmt.Sprintf("%s:%s:%s:%s", domain.CategoryMissingReferences, m.Table, m.RecordID, m.Column),
				Category:    domain.CategoryMissingReferences,
				Severity:    domain.SeverityData,
				ProbeRef:    fmt.Sprintf("MissingReferences:table=%s,id=%s,column=%s", m.Table, m.RecordID, m.Column),
				Description: desc,
				Remediation: fmt.Sprintf("Populate %s.%s with an existing record.", m.Table, m.Column),
			})
		}
	}

	base, err := snap.BaseCurrencyCode(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		b.add(domain.AuditFinding{
			FindingID:   fmt.Sprintf("%s:no-base-currency", domain.CategoryExchangeRates),
			Category:    domain.CategoryExchangeRates,
			Severity:    domain.SeverityData,
			ProbeRef:    "BaseCurrencyCode",
			Description: "no base currency is configured, exchange rates cannot be checked",
			Remediation: "Mark exactly one currency as the base currency.",
		})
		return trial, nil
	}
	if ok, err := b.probe(domain.CategoryExchangeRates, "BaseCurrencyCode", err); err != nil {
		return domain.TrialBalanceTotals{}, err
	} else if ok {
		defects, err := snap.ExchangeRateDefects(ctx, chunk, base)
		if ok, err := b.probe(domain.CategoryExchangeRates, "ExchangeRateDefects", err); err != nil {
			return domain.TrialBalanceTotals{}, err
		} else if ok {
			s.checkExchangeRates(defects, base, b)
		}
	}

	return trial, nil
}

// runGlobalChecks runs the checks over master data, which do not depend on the window.
func (s *ledgerAuditor) runGlobalChecks(ctx context.Context, snap portsrepo.AuditSnapshot, window domain.DateWindow, agingCutoffDays int, b *reportBuilder) error {
	accounts, err := snap.ListAccounts(ctx)
	accountsOK, err := b.probe(domain.CategoryInactiveAccounts, "ListAccounts", err)
	if err != nil {
		return err
	}
	byID := make(map[string]domain.Account, len(accounts))
	if accountsOK {
		b.counts[SummaryAccountsChecked] = len(accounts)
		for _, a := range accounts {
			byID[a.AccountID] = a
		}
		for _, a := range accounts {
			if !a.IsActive && !a.Balance.IsZero() {
				b.add(domain.AuditFinding{
					FindingID:   fmt.Sprintf("%s:%s", domain.CategoryInactiveAccounts, a.AccountID),
					Category:    domain.CategoryInactiveAccounts,
					Severity:    domain.SeverityLogic,
					ProbeRef:    fmt.Sprintf("ListAccounts:account_id=%s", a.AccountID),
					Description: fmt.Sprintf("inactive account %s (%s) has balance %s", a.Code, a.AccountID, a.Balance.StringFixed(2)),
					Remediation: "Transfer the balance to an active account before deactivating, or reactivate the account.",
				})
			}
		}
		s.checkHierarchy(accounts, byID, b)
	}

	assets, err := snap.ListFixedAssets(ctx)
	if ok, err := b.probe(domain.CategoryFixedAssets, "ListFixedAssets", err); err != nil {
		return err
	} else if ok {
		s.checkFixedAssets(assets, byID, accountsOK, b)
	}

	parties, err := snap.PartiesOverCreditLimit(ctx)
	if ok, err := b.probe(domain.CategoryCreditLimits, "PartiesOverCreditLimit", err); err != nil {
		return err
	} else if ok {
		for _, p := range parties {
			if !p.ExceedsCreditLimit() {
				continue
			}
			b.add(domain.AuditFinding{
				FindingID:   fmt.Sprintf("%s:%s", domain.CategoryCreditLimits, p.PartyID),
				Category:    domain.CategoryCreditLimits,
				Severity:    domain.SeverityLogic,
				ProbeRef:    fmt.Sprintf("PartiesOverCreditLimit:party_id=%s", p.PartyID),
				Description: fmt.Sprintf("party %s (%s) balance %s exceeds credit limit %s", p.Name, p.PartyID, p.Balance.StringFixed(2), p.CreditLimit.StringFixed(2)),
				Remediation: "Collect the outstanding balance or raise the credit limit with approval.",
			})
		}
	}

	var receivable []string
	for _, spec := range s.docTypes {
		if spec.Receivable {
			receivable = append(receivable, spec.DocumentType)
		}
	}
	cutoff := domain.TruncateDay(window.To).AddDate(0, 0, -agingCutoffDays)
	aged, err := snap.CountReceivablesOlderThan(ctx, cutoff, receivable)
	if ok, err := b.probe(domain.CategoryReceivablesAging, "CountReceivablesOlderThan", err); err != nil {
		return err
	} else if ok {
		b.counts[SummaryReceivablesAged] = aged
	}

	available, err := snap.AuditTrailAvailable(ctx)
	if ok, err := b.probe(domain.CategoryAuditTrail, "AuditTrailAvailable", err); err != nil {
		return err
	} else if ok && !available {
		b.add(domain.AuditFinding{
			FindingID:   fmt.Sprintf("%s:missing", domain.CategoryAuditTrail),
			Category:    domain.CategoryAuditTrail,
			Severity:    domain.SeverityCode,
			ProbeRef:    "AuditTrailAvailable",
			Description: "the audit trail store is not installed; mutations are not being recorded",
			Remediation: "Apply the audit log migration and restart the service.",
		})
	}
	return nil
}

func (s *ledgerAuditor) checkEntryBalance(t domain.EntryTotals, b *reportBuilder) {
	var problems []string
	if !s.policy.Balanced(t.LineDebit, t.LineCredit) {
		problems = append(problems, fmt.Sprintf("lines debit %s vs credit %s (difference %s)",
			t.LineDebit.StringFixed(2), t.LineCredit.StringFixed(2), t.LineDebit.Sub(t.LineCredit).Abs().StringFixed(2)))
	}
	if !s.policy.Balanced(t.HeaderDebit, t.LineDebit) || !s.policy.Balanced(t.HeaderCredit, t.LineCredit) {
		problems = append(problems, fmt.Sprintf("header %s/%s vs lines %s/%s",
			t.HeaderDebit.StringFixed(2), t.HeaderCredit.StringFixed(2), t.LineDebit.StringFixed(2), t.LineCredit.StringFixed(2)))
	}
	if len(problems) == 0 {
		return
	}
	b.add(domain.AuditFinding{
		FindingID:   fmt.Sprintf("%s:%s", domain.CategoryEntryBalance, t.EntryID),
		Category:    domain.CategoryEntryBalance,
		Severity:    domain.SeverityLogic,
		ProbeRef:    fmt.Sprintf("EntryTotals:entry_id=%s", t.EntryID),
		Description: fmt.Sprintf("journal entry %s is unbalanced: %s", t.EntryNumber, strings.Join(problems, "; ")),
		Remediation: "Reverse the entry and re-post the source document with corrected posting rules.",
	})
}

func (s *ledgerAuditor) checkTrialBalance(trial domain.TrialBalanceTotals, window domain.DateWindow, b *reportBuilder) {
	if s.policy.Balanced(trial.TotalDebit, trial.TotalCredit) {
		return
	}
	diff := trial.TotalDebit.Sub(trial.TotalCredit).Abs()
	from, to := window.From.Format("2006-01-02"), window.To.Format("2006-01-02")
	b.add(domain.AuditFinding{
		FindingID:   fmt.Sprintf("%s:%s:%s", domain.CategoryTrialBalance, from, to),
		Category:    domain.CategoryTrialBalance,
		Severity:    domain.SeverityLogic,
		ProbeRef:    fmt.Sprintf("TrialBalance:from=%s,to=%s", from, to),
		Description: fmt.Sprintf("trial balance does not agree: total debit %s, total credit %s, difference %s",
			trial.TotalDebit.StringFixed(2), trial.TotalCredit.StringFixed(2), diff.StringFixed(2)),
		Remediation: "Investigate the entries reported under ENTRY_BALANCE; the trial balance follows once they are corrected.",
	})
}

func (s *ledgerAuditor) checkExchangeRates(defects []domain.ExchangeRateDefect, base string, b *reportBuilder) {
	byEntry := make(map[string][]domain.ExchangeRateDefect)
	var order []string
	for _, d := range defects {
		if d.CurrencyCode == base || d.ExchangeRate.IsPositive() {
			continue
		}
		if _, ok := byEntry[d.EntryID]; !ok {
			order = append(order, d.EntryID)
		}
		byEntry[d.EntryID] = append(byEntry[d.EntryID], d)
	}
	for _, entryID := range order {
		lines := byEntry[entryID]
		parts := make([]string, len(lines))
		for i, l := range lines {
			parts[i] = fmt.Sprintf("line %d %s rate %s", l.LineNumber, l.CurrencyCode, l.ExchangeRate.String())
		}
		b.add(domain.AuditFinding{
			FindingID:   fmt.Sprintf("%s:%s", domain.CategoryExchangeRates, entryID),
			Category:    domain.CategoryExchangeRates,
			Severity:    domain.SeverityData,
			ProbeRef:    fmt.Sprintf("ExchangeRateDefects:entry_id=%s", entryID),
			Description: fmt.Sprintf("journal entry %s has non-%s lines without a positive exchange rate: %s", lines[0].EntryNumber, base, strings.Join(parts, ", ")),
			Remediation: "Record the exchange rate for the entry date, then reverse and re-post the document.",
		})
	}
}

func (s *ledgerAuditor) checkFixedAssets(assets []domain.FixedAsset, accounts map[string]domain.Account, accountsKnown bool, b *reportBuilder) {
	for _, asset := range assets {
		refs := []struct {
			column string
			value  string
		}{
			{"asset_account_id", asset.AssetAccountID},
			{"expense_account_id", asset.ExpenseAccountID},
			{"accumulated_depreciation_account_id", asset.AccumulatedDepreciationAccount},
		}
		for _, ref := range refs {
			_, exists := accounts[ref.value]
			if ref.value != "" && (exists || !accountsKnown) {
				continue
			}
			desc := fmt.Sprintf("fixed asset %s (%s) has no %s", asset.Name, asset.AssetID, ref.column)
			if ref.value != "" {
				desc = fmt.Sprintf("fixed asset %s (%s) references missing account %s in %s", asset.Name, asset.AssetID, ref.value, ref.column)
			}
			b.add(domain.AuditFinding{
				FindingID:   fmt.Sprintf("%s:%s:%s", domain.CategoryFixedAssets, asset.AssetID, ref.column),
				Category:    domain.CategoryFixedAssets,
				Severity:    domain.SeverityData,
				ProbeRef:    fmt.Sprintf("ListFixedAssets:asset_id=%s", asset.AssetID),
				Description: desc,
				Remediation: "Assign the asset an existing account for every ledger role.",
			})
		}
		if asset.AccumulatedDepreciation.GreaterThan(asset.Cost) {
			b.add(domain.AuditFinding{
				FindingID:   fmt.Sprintf("%s:%s:depreciation", domain.CategoryFixedAssets, asset.AssetID),
				Category:    domain.CategoryFixedAssets,
				Severity:    domain.SeverityLogic,
				ProbeRef:    fmt.Sprintf("ListFixedAssets:asset_id=%s", asset.AssetID),
				Description: fmt.Sprintf("fixed asset %s (%s) accumulated depreciation %s exceeds cost %s", asset.Name, asset.AssetID, asset.AccumulatedDepreciation.StringFixed(2), asset.Cost.StringFixed(2)),
				Remediation: "Reverse the excess depreciation entries.",
			})
		}
	}
}

func (s *ledgerAuditor) checkHierarchy(accounts []domain.Account, byID map[string]domain.Account, b *reportBuilder) {
	sorted := append([]domain.Account(nil), accounts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].AccountID < sorted[j].AccountID })

	for _, a := range sorted {
		if a.ParentAccountID == "" {
			continue
		}
		parent, ok := byID[a.ParentAccountID]
		if !ok {
			b.add(domain.AuditFinding{
				FindingID:   fmt.Sprintf("%s:%s:parent", domain.CategoryAccountHierarchy, a.AccountID),
				Category:    domain.CategoryAccountHierarchy,
				Severity:    domain.SeverityData,
				ProbeRef:    fmt.Sprintf("ListAccounts:account_id=%s", a.AccountID),
				Description: fmt.Sprintf("account %s (%s) references missing parent %s", a.Code, a.AccountID, a.ParentAccountID),
				Remediation: "Re-parent the account to an existing account.",
			})
			continue
		}
		if inCycle(a, byID) {
			b.add(domain.AuditFinding{
				FindingID:   fmt.Sprintf("%s:%s:cycle", domain.CategoryAccountHierarchy, a.AccountID),
				Category:    domain.CategoryAccountHierarchy,
				Severity:    domain.SeverityLogic,
				ProbeRef:    fmt.Sprintf("ListAccounts:account_id=%s", a.AccountID),
				Description: fmt.Sprintf("account %s (%s) is its own ancestor", a.Code, a.AccountID),
				Remediation: "Break the cycle by re-parenting one account to a root.",
			})
			continue
		}
		if a.Level != parent.Level+1 {
			b.add(domain.AuditFinding{
				FindingID:   fmt.Sprintf("%s:%s:level", domain.CategoryAccountHierarchy, a.AccountID),
				Category:    domain.CategoryAccountHierarchy,
				Severity:    domain.SeverityData,
				ProbeRef:    fmt.Sprintf("ListAccounts:account_id=%s", a.AccountID),
				Description: fmt.Sprintf("account %s (%s) has level %d but its parent %s has level %d", a.Code, a.AccountID, a.Level, parent.Code, parent.Level),
				Remediation: fmt.Sprintf("Set the level of %s to %d.", a.Code, parent.Level+1),
			})
		}
	}
}

// inCycle reports whether following parents from a leads back to a.
func inCycle(a domain.Account, byID map[string]domain.Account) bool {
	visited := map[string]struct{}{a.AccountID: {}}
	current := a
	for current.ParentAccountID != "" {
		if current.ParentAccountID == a.AccountID {
			return true
		}
		if _, loop := visited[current.ParentAccountID]; loop {
			// A cycle further up that does not include a.
			return false
		}
		next, ok := byID[current.ParentAccountID]
		if !ok {
			return false
		}
		visited[next.AccountID] = struct{}{}
		current = next
	}
	return false
}
