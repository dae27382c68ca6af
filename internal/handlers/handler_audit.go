package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/core/domain"
	"github.com/SscSPs/posting_engine/internal/dto"
	"github.com/SscSPs/posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditor    portssvc.LedgerAuditorSvc
	auditLogs  portssvc.AuditTrailReaderSvc
	windowDays int
}

func newAuditHandler(auditor portssvc.LedgerAuditorSvc, auditLogs portssvc.AuditTrailReaderSvc, windowDays int) *auditHandler {
	if windowDays <= 0 {
		windowDays = domain.DefaultLedgerPolicy().AuditChunkDays
	}
	return &auditHandler{auditor: auditor, auditLogs: auditLogs, windowDays: windowDays}
}

// registerAuditRoutes registers the ledger auditor and audit trail routes.
// windowDays is the length of the audit window used when the caller gives no dates.
func registerAuditRoutes(rg *gin.RouterGroup, auditor portssvc.LedgerAuditorSvc, auditLogs portssvc.AuditTrailReaderSvc, windowDays int) {
	h := newAuditHandler(auditor, auditLogs, windowDays)
	rg.GET("/audit", h.runAudit)
	rg.GET("/audit-logs/:entityTable/:entityID", h.listAuditLogs)
}

// runAudit godoc
// @Summary Run the ledger auditor
// @Description Runs every integrity check over the window and returns the report. Integrity problems are reported as findings, never corrected.
// @Tags audit
// @Produce  json
// @Param   from query string false "Window start (YYYY-MM-DD)"
// @Param   to query string false "Window end (YYYY-MM-DD), defaults to today"
// @Param   agingCutoffDays query int false "Receivable aging cutoff in days"
// @Success 200 {object} domain.AuditReport
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 503 {object} map[string]string "Ledger store unavailable"
// @Failure 500 {object} map[string]string "Audit failed"
// @Security BearerAuth
// @Router /audit [get]
func (h *auditHandler) runAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.AuditRunQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind query for RunAudit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	window := h.resolveWindow(q, time.Now().UTC())
	logger.Info("Received request to run ledger audit",
		slog.String("from", window.From.Format("2006-01-02")),
		slog.String("to", window.To.Format("2006-01-02")),
	)

	report, err := h.auditor.Run(c.Request.Context(), window, q.AgingCutoffDays)
	if err != nil {
		respondError(c, logger, "Ledger audit", err)
		return
	}

	logger.Info("Ledger audit finished",
		slog.Int("findings", len(report.Findings)),
		slog.Int("failed_categories", len(report.FailedCategories)),
	)
	c.JSON(http.StatusOK, report)
}

func (h *auditHandler) resolveWindow(q dto.AuditRunQuery, now time.Time) domain.DateWindow {
	to := q.To
	if to.IsZero() {
		to = now
	}
	from := q.From
	if from.IsZero() {
		from = to.AddDate(0, 0, -(h.windowDays - 1))
	}
	return domain.DateWindow{From: from, To: to}
}

// listAuditLogs godoc
// @Summary List the audit trail of an entity
// @Description Pages through the recorded changes of one entity, oldest first. Each record's checksum is verified on read.
// @Tags audit
// @Produce  json
// @Param   entityTable path string true "Entity table, e.g. journal_entries"
// @Param   entityID path string true "Entity ID"
// @Param   limit query int false "Page size (max 100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} map[string]string "Invalid query or token"
// @Failure 500 {object} map[string]string "Failed to list audit logs"
// @Security BearerAuth
// @Router /audit-logs/{entityTable}/{entityID} [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAuditLogs", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	entityTable, entityID := c.Param("entityTable"), c.Param("entityID")
	resp, err := h.auditLogs.History(c.Request.Context(), entityTable, entityID, params)
	if err != nil {
		respondError(c, logger.With(slog.String("entity_table", entityTable), slog.String("entity_id", entityID)), "List audit logs", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
