package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yanqian/care-moments/internal/domain/burnout"
	"github.com/yanqian/care-moments/internal/domain/interaction"
	"github.com/yanqian/care-moments/internal/domain/moments"
	"github.com/yanqian/care-moments/internal/domain/reflection"
	"github.com/yanqian/care-moments/internal/domain/suggestion"
)

type overviewResponse struct {
	Burnout burnout.Result `json:"burnout"`
	Moments moments.Result `json:"moments"`
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	burnoutSvc    burnout.Service
	momentsSvc    moments.Service
	reflectionSvc reflection.Service
	suggestionSvc suggestion.Service
	historySvc    interaction.Service
	logger        *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	burnoutSvc burnout.Service,
	momentsSvc moments.Service,
	reflectionSvc reflection.Service,
	suggestionSvc suggestion.Service,
	historySvc interaction.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		burnoutSvc:    burnoutSvc,
		momentsSvc:    momentsSvc,
		reflectionSvc: reflectionSvc,
		suggestionSvc: suggestionSvc,
		historySvc:    historySvc,
		logger:        logger.With("component", "http.handler"),
	}
}

// AnalyzeBurnout scores caregiver burnout risk for the posted history.
func (h *Handler) AnalyzeBurnout(c *gin.Context) {
	_, records, ok := h.bindAnalysis(c)
	if !ok {
		return
	}

	resp, err := h.burnoutSvc.Analyze(c.Request.Context(), records)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PredictMoments ranks the activity and time combinations most likely to go well.
func (h *Handler) PredictMoments(c *gin.Context) {
	req, records, ok := h.bindAnalysis(c)
	if !ok {
		return
	}

	resp, err := h.momentsSvc.Predict(c.Request.Context(), records, req.Timezone)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InteractionInsight writes a short reflection on one interaction.
func (h *Handler) InteractionInsight(c *gin.Context) {
	_, rec, ok := h.bindInteraction(c)
	if !ok {
		return
	}

	resp, err := h.reflectionSvc.Insight(c.Request.Context(), rec)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExtractPreferences learns new care preferences from one interaction.
func (h *Handler) ExtractPreferences(c *gin.Context) {
	req, rec, ok := h.bindInteraction(c)
	if !ok {
		return
	}

	resp, err := h.reflectionSvc.ExtractPreferences(c.Request.Context(), rec, req.ExistingPreferences)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Suggest proposes activities for a care recipient.
func (h *Handler) Suggest(c *gin.Context) {
	var req suggestion.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.suggestionSvc.Suggest(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecipientBurnout analyzes the stored history of one care recipient.
func (h *Handler) RecipientBurnout(c *gin.Context) {
	records, ok := h.loadHistory(c)
	if !ok {
		return
	}
	resp, err := h.burnoutSvc.Analyze(c.Request.Context(), records)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecipientMoments predicts from the stored history of one care recipient.
func (h *Handler) RecipientMoments(c *gin.Context) {
	records, ok := h.loadHistory(c)
	if !ok {
		return
	}
	resp, err := h.momentsSvc.Predict(c.Request.Context(), records, c.Query("timezone"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecipientOverview runs both analytics over one history concurrently.
func (h *Handler) RecipientOverview(c *gin.Context) {
	records, ok := h.loadHistory(c)
	if !ok {
		return
	}

	var (
		burnoutResult burnout.Result
		momentsResult moments.Result
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		res, err := h.burnoutSvc.Analyze(ctx, records)
		burnoutResult = res
		return err
	})
	g.Go(func() error {
		res, err := h.momentsSvc.Predict(ctx, records, c.Query("timezone"))
		momentsResult = res
		return err
	})
	if err := g.Wait(); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, overviewResponse{Burnout: burnoutResult, Moments: momentsResult})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) bindAnalysis(c *gin.Context) (analysisRequest, []interaction.Record, bool) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return req, nil, false
	}
	records, err := decodeInteractions(req.Interactions)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return req, nil, false
	}
	return req, records, true
}

func (h *Handler) bindInteraction(c *gin.Context) (interactionRequest, interaction.Record, bool) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return req, interaction.Record{}, false
	}
	rec, err := decodeInteraction(req.Interaction)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "missing interaction data", err))
		return req, interaction.Record{}, false
	}
	return req, rec, true
}

func (h *Handler) loadHistory(c *gin.Context) ([]interaction.Record, bool) {
	claims, ok := viewerFrom(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return nil, false
	}
	records, err := h.historySvc.History(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return nil, false
	}
	return records, true
}
