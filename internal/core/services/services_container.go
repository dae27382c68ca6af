package services

import (
	"github.com/SscSPs/posting_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...RecorderOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	docTypes := domain.DefaultDocumentTypes()

	// The recorder is used by every writer, so it comes first.
	container.AuditTrail = NewAuditTrailRecorder(repos.AuditLogRepo, cfg.Audit, opts...)
	container.AuditTrail.RegisterEntity(tableDocuments, domain.EntityClassification{Financial: true, SensitiveFields: []string{"status", "locked"}})
	container.AuditTrail.RegisterEntity(tableCurrencies, domain.EntityClassification{SensitiveFields: []string{"base_currency"}})

	container.Currency = NewCurrencyService(
		repos.CurrencyRepo,
		repos.ExchangeRateRepo,
		repos.TxManager,
		container.AuditTrail,
		cfg.Policy,
		cfg.Ledger,
	)
	container.PostingRule = NewPostingRuleService(repos.PostingRuleRepo, repos.AccountRepo, container.AuditTrail, docTypes)
	container.Poster = NewJournalPoster(
		repos.TxManager,
		repos.JournalRepo,
		repos.CurrencyRepo,
		container.PostingRule,
		container.Currency,
		container.AuditTrail,
		cfg.Policy,
		cfg.Ledger,
	)
	container.Reversal = NewReversalService(repos.TxManager, container.AuditTrail, cfg.Policy, cfg.Ledger)
	container.Auditor = NewLedgerAuditor(repos.Snapshotter, cfg.Policy, docTypes)
	container.AuditLogs = NewAuditTrailReader(repos.AuditLogRepo)

	return container
}
