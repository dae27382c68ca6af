package services

// ServiceContainer holds all the service interfaces
type ServiceContainer struct {
	Currency    CurrencySvcFacade
	PostingRule PostingRuleSvcFacade
	Poster      JournalPosterSvc
	Reversal    ReversalSvc
	Auditor     LedgerAuditorSvc
	AuditTrail  AuditTrailRecorder
	AuditLogs   AuditTrailReaderSvc
}
