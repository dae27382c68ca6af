package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/posting_engine/internal/apperrors"
	"github.com/SscSPs/posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps an application error to the HTTP status it is reported with.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrIntegrity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrDependency):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Unexpected failures are logged
// at error level and their details are not sent to the client.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	status := statusForError(err)
	switch status {
	case http.StatusInternalServerError:
		logger.Error(op+" failed", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": op + " failed"})
	case http.StatusServiceUnavailable:
		logger.Error(op+" failed: dependency unavailable", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Service temporarily unavailable"})
	default:
		logger.Warn(op+" rejected", slog.String("error", err.Error()), slog.Int("status", status))
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// requireActor reads the acting user from the context, writing 401 when absent.
func requireActor(c *gin.Context, logger *slog.Logger) (string, bool) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return actorID, true
}
