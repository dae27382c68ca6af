package accounting

import (
	"fmt"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceDelta returns the signed change a line makes to its account balance.
// This is used by the poster, the reversal engine and the stores so balances follow one convention.
func BalanceDelta(line domain.JournalLine, nature domain.AccountNature) (decimal.Decimal, error) {
	// DEBIT nature: debit increases (+), credit decreases (-)
	// CREDIT nature: credit increases (+), debit decreases (-)
	switch nature {
	case domain.DebitNature:
		return line.Debit.Sub(line.Credit), nil
	case domain.CreditNature:
		return line.Credit.Sub(line.Debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account nature '%s' encountered for account ID %s", nature, line.AccountID)
	}
}

// BalanceChanges sums the deltas of all lines per account.
func BalanceChanges(lines []domain.JournalLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(accounts))
	for _, line := range lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account not found for account ID %s", line.AccountID)
		}
		delta, err := BalanceDelta(line, account.Nature)
		if err != nil {
			return nil, fmt.Errorf("error calculating balance delta for line %d: %w", line.LineNumber, err)
		}
		changes[line.AccountID] = changes[line.AccountID].Add(delta)
	}
	return changes, nil
}

// SumLines returns the debit and credit totals of the lines.
func SumLines(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit, totalCredit = decimal.Zero, decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateLines checks that every line has exactly one positive side and that
// the lines balance within the policy tolerance.
func ValidateLines(lines []domain.JournalLine, policy domain.LedgerPolicy) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines, got %d", apperrors.ErrUnbalancedPosting, len(lines))
	}
	for _, line := range lines {
		if !line.HasExactlyOneSide() {
			return fmt.Errorf("%w: line %d on %s must have exactly one positive side (debit %s, credit %s)",
				apperrors.ErrInvalidAmount, line.LineNumber, line.AccountID, line.Debit.String(), line.Credit.String())
		}
	}
	debit, credit := SumLines(lines)
	if !policy.Balanced(debit, credit) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s", apperrors.ErrUnbalancedPosting, debit.String(), credit.String())
	}
	return nil
}

// MirrorLines swaps debit and credit of every line and renumbers from 1.
func MirrorLines(lines []domain.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		out[i] = domain.JournalLine{
			AccountID:    line.AccountID,
			Debit:        line.Credit,
			Credit:       line.Debit,
			LineNumber:   i + 1,
			CurrencyCode: line.CurrencyCode,
			ExchangeRate: line.ExchangeRate,
		}
	}
	return out
}
