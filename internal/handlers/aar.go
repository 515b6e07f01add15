package handlers

import (
	"strconv"

	"github.com/basecode360/traintrack/internal/services"
	"github.com/basecode360/traintrack/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AARHandler struct {
	aarService *services.AARService
	scope      *services.ScopeService
}

func NewAARHandler(db *gorm.DB) *AARHandler {
	return &AARHandler{
		aarService: services.NewAARService(db),
		scope:      services.NewScopeService(db),
	}
}

// Create records an AAR against a training event.
// POST /api/aars
func (h *AARHandler) Create(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	var req services.CreateAARRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	aar, err := h.aarService.Create(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, aar)
}

// List returns AARs inside the actor's visible units.
// GET /api/aars
func (h *AARHandler) List(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	var req services.AARListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	aars, err := h.aarService.List(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, aars)
}

// GetByID returns a single AAR with its items.
// GET /api/aars/:id
func (h *AARHandler) GetByID(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid AAR id")
		return
	}

	aar, err := h.aarService.GetByID(actor, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, aar)
}

// Delete removes an AAR. Allowed for its author or unit leadership.
// DELETE /api/aars/:id
func (h *AARHandler) Delete(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid AAR id")
		return
	}

	if err := h.aarService.Delete(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "AAR deleted"})
}

// Rollup aggregates AAR item counts across a unit's subtree.
// GET /api/units/:id/aar-rollup
func (h *AARHandler) Rollup(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid unit id")
		return
	}

	rollup, err := h.aarService.Rollup(actor, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, rollup)
}
