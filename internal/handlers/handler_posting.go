package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/posting_engine/internal/core/ports/services"
	"github.com/SscSPs/posting_engine/internal/dto"
	"github.com/SscSPs/posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles posting, reversal and conversion requests.
type postingHandler struct {
	poster    portssvc.JournalPosterSvc
	reversal  portssvc.ReversalSvc
	converter portssvc.CurrencyConverterSvc
}

func newPostingHandler(poster portssvc.JournalPosterSvc, reversal portssvc.ReversalSvc, converter portssvc.CurrencyConverterSvc) *postingHandler {
	return &postingHandler{
		poster:    poster,
		reversal:  reversal,
		converter: converter,
	}
}

// registerPostingRoutes registers the routes that write journal entries.
func registerPostingRoutes(rg *gin.RouterGroup, poster portssvc.JournalPosterSvc, reversal portssvc.ReversalSvc, converter portssvc.CurrencyConverterSvc) {
	h := newPostingHandler(poster, reversal, converter)

	rg.POST("/postings", h.postDocument)
	rg.POST("/reversals", h.reverseDocument)
	rg.POST("/conversions", h.createConversion)
	rg.GET("/journal-entries/:entryID", h.getJournalEntry)
}

// postDocument godoc
// @Summary Post a source document
// @Description Applies the document type's posting rules and writes one balanced journal entry. The document is locked afterwards.
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   posting body dto.PostDocumentRequest true "Document to post"
// @Success 201 {object} dto.EntryCreatedResponse
// @Failure 400 {object} map[string]string "Invalid input or posting rules"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document already posted"
// @Failure 422 {object} map[string]string "Posting does not balance"
// @Failure 500 {object} map[string]string "Failed to post document"
// @Security BearerAuth
// @Router /postings [post]
func (h *postingHandler) postDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("document_type", req.DocumentType), slog.String("document_id", req.DocumentID))
	logger.Info("Received request to post document")

	entryID, err := h.poster.Post(c.Request.Context(), req.DocumentType, req.DocumentID, actorID)
	if err != nil {
		respondError(c, logger, "Post document", err)
		return
	}

	logger.Info("Document posted", slog.String("entry_id", entryID))
	c.JSON(http.StatusCreated, dto.EntryCreatedResponse{EntryID: entryID})
}

// reverseDocument godoc
// @Summary Reverse a posted document
// @Description Writes the mirror entry of the document's active entry and unlocks the document so it can be corrected and posted again
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   reversal body dto.ReverseDocumentRequest true "Document to reverse"
// @Success 201 {object} dto.EntryCreatedResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Nothing to reverse"
// @Failure 500 {object} map[string]string "Failed to reverse document"
// @Security BearerAuth
// @Router /reversals [post]
func (h *postingHandler) reverseDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReverseDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("document_type", req.DocumentType), slog.String("document_id", req.DocumentID))
	logger.Info("Received request to reverse document")

	entryID, err := h.reversal.Reverse(c.Request.Context(), req.DocumentType, req.DocumentID, actorID, req.Reason)
	if err != nil {
		respondError(c, logger, "Reverse document", err)
		return
	}

	logger.Info("Document reversed", slog.String("reversal_entry_id", entryID))
	c.JSON(http.StatusCreated, dto.EntryCreatedResponse{EntryID: entryID})
}

// createConversion godoc
// @Summary Convert between currencies
// @Description Moves an amount from one account to another in a different currency. Rounding residue goes to the FX gain/loss account.
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConversionRequest true "Conversion details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No exchange rate available"
// @Failure 500 {object} map[string]string "Failed to create conversion"
// @Security BearerAuth
// @Router /conversions [post]
func (h *postingHandler) createConversion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Conversion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c, logger)
	if !ok {
		return
	}

	logger = logger.With(
		slog.String("from_currency", req.FromCurrencyCode),
		slog.String("to_currency", req.ToCurrencyCode),
	)
	logger.Info("Received request to convert", slog.String("amount", req.Amount.String()))

	entry, err := h.converter.CreateConversionEntry(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, "Create conversion", err)
		return
	}

	logger.Info("Conversion entry written", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines
// @Tags postings
// @Produce  json
// @Param   entryID path string true "Journal Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [get]
func (h *postingHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.poster.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), "Get journal entry", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
