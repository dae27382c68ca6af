package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       string
	MigrationsPath string
	JWTSecret      string // empty means the actor is taken from the X-Actor-ID header
	RateLimit      string // formatted as "<limit>-<period>", e.g. "100-M"
	AllowedOrigins []string

	Policy domain.LedgerPolicy
	Ledger LedgerConfig
	Audit  AuditTrailConfig
}

// LedgerConfig configures entry numbering and posting retries.
type LedgerConfig struct {
	FXGainLossAccountID    string
	EntryNumberPrefix      string
	ReversalNumberPrefix   string
	ConversionNumberPrefix string
	EntryNumberPadding     int
	TxRetryAttempts        int
}

// AuditTrailConfig configures the audit trail recorder.
type AuditTrailConfig struct {
	SensitiveFields   []string
	RetryAttempts     int
	RetryBaseDelay    time.Duration
	FinancialEntities []string
}

// DefaultLedgerConfig returns the numbering defaults used when nothing is configured.
func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		EntryNumberPrefix:      "JV",
		ReversalNumberPrefix:   "RV",
		ConversionNumberPrefix: "FX",
		EntryNumberPadding:     6,
		TxRetryAttempts:        3,
	}
}

// DefaultAuditTrailConfig returns the recorder defaults.
func DefaultAuditTrailConfig() AuditTrailConfig {
	return AuditTrailConfig{
		SensitiveFields:   []string{"balance", "credit_limit", "rate", "total_debit", "total_credit", "status"},
		RetryAttempts:     3,
		RetryBaseDelay:    50 * time.Millisecond,
		FinancialEntities: []string{"journal_entries", "journal_lines", "accounts", "exchange_rates", "posting_rules"},
	}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	policy := domain.DefaultLedgerPolicy()
	ledger := DefaultLedgerConfig()
	audit := DefaultAuditTrailConfig()

	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RATE_LIMIT", "600-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("BALANCE_TOLERANCE", policy.BalanceTolerance.String())
	v.SetDefault("AGING_CUTOFF_DAYS", policy.AgingCutoffDays)
	v.SetDefault("AUDIT_CHUNK_DAYS", policy.AuditChunkDays)
	v.SetDefault("FX_GAIN_LOSS_ACCOUNT_ID", "")
	v.SetDefault("ENTRY_NUMBER_PREFIX", ledger.EntryNumberPrefix)
	v.SetDefault("REVERSAL_NUMBER_PREFIX", ledger.ReversalNumberPrefix)
	v.SetDefault("CONVERSION_NUMBER_PREFIX", ledger.ConversionNumberPrefix)
	v.SetDefault("ENTRY_NUMBER_PADDING", ledger.EntryNumberPadding)
	v.SetDefault("TX_RETRY_ATTEMPTS", ledger.TxRetryAttempts)
	v.SetDefault("AUDIT_SENSITIVE_FIELDS", strings.Join(audit.SensitiveFields, ","))
	v.SetDefault("AUDIT_FINANCIAL_ENTITIES", strings.Join(audit.FinancialEntities, ","))
	v.SetDefault("AUDIT_RETRY_ATTEMPTS", audit.RetryAttempts)
	v.SetDefault("AUDIT_RETRY_BASE_DELAY", audit.RetryBaseDelay.String())

	// Environment variables override defaults and .env values.
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = v.GetString("LOG_LEVEL")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	cfg.JWTSecret = v.GetString("JWT_SECRET")
	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.AllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	tolerance, err := decimal.NewFromString(v.GetString("BALANCE_TOLERANCE"))
	if err != nil || tolerance.IsNegative() {
		return nil, fmt.Errorf("invalid BALANCE_TOLERANCE %q", v.GetString("BALANCE_TOLERANCE"))
	}
	policy.BalanceTolerance = tolerance
	policy.AgingCutoffDays = v.GetInt("AGING_CUTOFF_DAYS")
	policy.AuditChunkDays = v.GetInt("AUDIT_CHUNK_DAYS")
	if policy.AgingCutoffDays < 0 || policy.AuditChunkDays <= 0 {
		return nil, fmt.Errorf("AGING_CUTOFF_DAYS must be >= 0 and AUDIT_CHUNK_DAYS > 0")
	}
	cfg.Policy = policy

	ledger.FXGainLossAccountID = v.GetString("FX_GAIN_LOSS_ACCOUNT_ID")
	if ledger.FXGainLossAccountID == "" {
		log.Println("Warning: FX_GAIN_LOSS_ACCOUNT_ID not set. Conversions with a residual will fail.")
	}
	ledger.EntryNumberPrefix = v.GetString("ENTRY_NUMBER_PREFIX")
	ledger.ReversalNumberPrefix = v.GetString("REVERSAL_NUMBER_PREFIX")
	ledger.ConversionNumberPrefix = v.GetString("CONVERSION_NUMBER_PREFIX")
	ledger.EntryNumberPadding = v.GetInt("ENTRY_NUMBER_PADDING")
	ledger.TxRetryAttempts = v.GetInt("TX_RETRY_ATTEMPTS")
	cfg.Ledger = ledger

	audit.SensitiveFields = splitList(v.GetString("AUDIT_SENSITIVE_FIELDS"))
	audit.FinancialEntities = splitList(v.GetString("AUDIT_FINANCIAL_ENTITIES"))
	audit.RetryAttempts = v.GetInt("AUDIT_RETRY_ATTEMPTS")
	retryDelayStr := v.GetString("AUDIT_RETRY_BASE_DELAY")
	audit.RetryBaseDelay, err = time.ParseDuration(retryDelayStr)
	if err != nil {
		audit.RetryBaseDelay = 50 * time.Millisecond
		log.Printf("Warning: Invalid value for AUDIT_RETRY_BASE_DELAY ('%s'). Defaulting to %s.\n", retryDelayStr, audit.RetryBaseDelay)
	}
	cfg.Audit = audit

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
