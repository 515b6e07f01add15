package handlers

import (
	"strconv"

	"github.com/basecode360/traintrack/internal/config"
	"github.com/basecode360/traintrack/internal/services"
	"github.com/basecode360/traintrack/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InsightHandler struct {
	insightService *services.InsightService
	retryService   *services.RetryService
	scope          *services.ScopeService
}

func NewInsightHandler(db *gorm.DB, cfg *config.Config) *InsightHandler {
	return &InsightHandler{
		insightService: services.NewInsightService(db, &cfg.OpenAI),
		retryService:   services.NewRetryService(db, &cfg.OpenAI),
		scope:          services.NewScopeService(db),
	}
}

// Generate queues an AI insight report over a unit's subtree. Requires
// leadership over the unit.
// POST /api/insights
func (h *InsightHandler) Generate(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	var req services.GenerateInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.insightService.Generate(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, report)
}

// List returns insight reports for units the actor can see.
// GET /api/insights
func (h *InsightHandler) List(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	var unitID *uint
	if uidStr := c.Query("unit_id"); uidStr != "" {
		uid, err := strconv.ParseUint(uidStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid unit id")
			return
		}
		u := uint(uid)
		unitID = &u
	}

	reports, err := h.insightService.List(actor, unitID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, reports)
}

// GetByID returns a single insight report.
// GET /api/insights/:id
func (h *InsightHandler) GetByID(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	report, err := h.insightService.GetByID(actor, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, report)
}

// Retry re-runs generation for a failed report.
// POST /api/insights/:id/retry
func (h *InsightHandler) Retry(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	// Visibility check before touching the report.
	if _, err := h.insightService.GetByID(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	if err := h.retryService.ManualRetry(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "retry started"})
}
