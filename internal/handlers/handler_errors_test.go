package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.NewValidationError("bad"), http.StatusBadRequest},
		{"invalid rule", apperrors.ErrInvalidRule, http.StatusBadRequest},
		{"not found", apperrors.ErrDocumentNotFound, http.StatusNotFound},
		{"no rate", &apperrors.NoExchangeRateError{From: "USD", To: "EUR"}, http.StatusNotFound},
		{"conflict", apperrors.ErrAlreadyPosted, http.StatusConflict},
		{"serialization", fmt.Errorf("post: %w", apperrors.ErrSerializationFailure), http.StatusConflict},
		{"duplicate", apperrors.ErrDuplicateRule, http.StatusConflict},
		{"integrity", apperrors.ErrUnbalancedPosting, http.StatusUnprocessableEntity},
		{"dependency", apperrors.NewDependencyError("ping", errors.New("refused")), http.StatusServiceUnavailable},
		{"subsystem", apperrors.ErrSubsystemUnavailable, http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
