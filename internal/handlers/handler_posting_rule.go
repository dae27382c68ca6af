package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/dto"
	"github.com/SscSPs/posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type postingRuleHandler struct {
	ruleService portssvc.PostingRuleSvcFacade
}

func newPostingRuleHandler(rs portssvc.PostingRuleSvcFacade) *postingRuleHandler {
	return &postingRuleHandler{ruleService: rs}
}

// registerPostingRuleRoutes registers the posting rule registry routes.
func registerPostingRuleRoutes(rg *gin.RouterGroup, ruleService portssvc.PostingRuleSvcFacade) {
	h := newPostingRuleHandler(ruleService)

	rules := rg.Group("/posting-rules")
	{
		rules.POST("", h.registerRule)
		rules.GET("/:documentType", h.listRules)
		rules.DELETE("/:ruleID", h.deactivateRule)
	}
}

// registerRule godoc
// @Summary Register a posting rule
// @Description Adds a rule mapping an amount field of a document type to one side of an account
// @Tags posting rules
// @Accept  json
// @Produce  json
// @Param   rule body dto.RegisterPostingRuleRequest true "Rule details"
// @Success 201 {object} dto.PostingRuleResponse
// @Failure 400 {object} map[string]string "Invalid rule"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Rule name already used for this document type"
// @Failure 500 {object} map[string]string "Failed to register rule"
// @Security BearerAuth
// @Router /posting-rules [post]
func (h *postingRuleHandler) registerRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterPostingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("document_type", req.DocumentType), slog.String("rule_name", req.RuleName))

	rule, err := h.ruleService.RegisterRule(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, "Register posting rule", err)
		return
	}

	logger.Info("Posting rule registered", slog.String("rule_id", rule.RuleID))
	c.JSON(http.StatusCreated, dto.ToPostingRuleResponse(rule))
}

// listRules godoc
// @Summary List posting rules
// @Description Lists the active rules of a document type in priority order
// @Tags posting rules
// @Produce  json
// @Param   documentType path string true "Document type"
// @Success 200 {array} dto.PostingRuleResponse
// @Failure 500 {object} map[string]string "Failed to list rules"
// @Security BearerAuth
// @Router /posting-rules/{documentType} [get]
func (h *postingRuleHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentType := c.Param("documentType")

	rules, err := h.ruleService.RulesFor(c.Request.Context(), documentType)
	if err != nil {
		respondError(c, logger, "List posting rules", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListPostingRuleResponse(rules))
}

// deactivateRule godoc
// @Summary Deactivate a posting rule
// @Description Stops a rule from applying to future postings. Existing entries are unaffected.
// @Tags posting rules
// @Param   ruleID path string true "Rule ID"
// @Success 204 "Rule deactivated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Rule not found"
// @Failure 500 {object} map[string]string "Failed to deactivate rule"
// @Security BearerAuth
// @Router /posting-rules/{ruleID} [delete]
func (h *postingRuleHandler) deactivateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID := c.Param("ruleID")

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	if err := h.ruleService.DeactivateRule(c.Request.Context(), ruleID, actorID); err != nil {
		respondError(c, logger.With(slog.String("rule_id", ruleID)), "Deactivate posting rule", err)
		return
	}

	c.Status(http.StatusNoContent)
}
