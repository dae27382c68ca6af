package apperrors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindErrorsMatchTheirSentinel(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{ErrAlreadyPosted, ErrConflict},
		{ErrNothingToReverse, ErrConflict},
		{ErrUnbalancedPosting, ErrIntegrity},
		{ErrDocumentNotFound, ErrNotFound},
		{ErrUnsupportedDocumentType, ErrValidation},
		{ErrDuplicateRule, ErrDuplicate},
		{ErrSubsystemUnavailable, ErrDependency},
		{ErrSerializationFailure, ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("posting doc-1: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
		})
	}

	assert.NotErrorIs(t, ErrAlreadyPosted, ErrNothingToReverse)
	assert.NotErrorIs(t, ErrUnbalancedPosting, ErrValidation)
}

func TestNoExchangeRateError(t *testing.T) {
	err := error(&NoExchangeRateError{From: "EUR", To: "JPY", AsOf: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})

	assert.ErrorIs(t, err, ErrNoExchangeRate)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "EUR to JPY as of 2024-03-01")

	var rateErr *NoExchangeRateError
	assert.True(t, errors.As(fmt.Errorf("convert: %w", err), &rateErr))
	assert.Equal(t, "JPY", rateErr.To)
}

func TestNewDependencyError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDependencyError("ledger store unreachable", cause)

	assert.ErrorIs(t, err, ErrDependency)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInternal)

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, 503, appErr.Code)
}

func TestConstructorsWrapSentinels(t *testing.T) {
	assert.ErrorIs(t, NewNotFoundError("account a1"), ErrNotFound)
	assert.ErrorIs(t, NewValidationError("bad limit"), ErrValidation)
	assert.Equal(t, "plain", NewAppError(500, "plain", nil).Error())
}
