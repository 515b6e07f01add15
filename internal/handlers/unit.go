package handlers

import (
	"strconv"

	"github.com/basecode360/traintrack/internal/middleware"
	"github.com/basecode360/traintrack/internal/services"
	"github.com/basecode360/traintrack/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UnitHandler struct {
	unitService *services.UnitService
	scope       *services.ScopeService
}

func NewUnitHandler(db *gorm.DB) *UnitHandler {
	return &UnitHandler{
		unitService: services.NewUnitService(db),
		scope:       services.NewScopeService(db),
	}
}

// List returns the units visible to the acting user as a flat list.
// GET /api/units
func (h *UnitHandler) List(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	units, err := h.unitService.List(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, units)
}

// Tree returns the visible units as a nested forest.
// GET /api/units/tree
func (h *UnitHandler) Tree(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	tree, err := h.unitService.TreeView(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, tree)
}

// Children returns a unit's direct subordinates.
// GET /api/units/:id/children
func (h *UnitHandler) Children(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid unit id")
		return
	}

	units, err := h.unitService.Children(actor, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, units)
}

// GetByID returns a single unit.
// GET /api/units/:id
func (h *UnitHandler) GetByID(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid unit id")
		return
	}

	unit, err := h.unitService.GetByID(actor, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, unit)
}

// Create adds a unit under a parent the actor can manage. A root unit
// (no parent) requires admin.
// POST /api/units
func (h *UnitHandler) Create(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	var req services.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	unit, err := h.unitService.Create(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, unit)
}

// Reparent moves a unit to a new parent.
// PUT /api/units/:id/parent
func (h *UnitHandler) Reparent(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid unit id")
		return
	}

	var req services.ReparentUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	unit, err := h.unitService.Reparent(actor, uint(id), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, unit)
}

// Update renames a unit.
// PUT /api/units/:id
func (h *UnitHandler) Update(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid unit id")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	unit, err := h.unitService.Update(actor, uint(id), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, unit)
}

// Delete removes a leaf unit with no assigned personnel.
// DELETE /api/units/:id
func (h *UnitHandler) Delete(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid unit id")
		return
	}

	if err := h.unitService.Delete(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "unit deleted"})
}

// RotateReferral replaces the unit's referral code.
// POST /api/units/:id/referral/rotate
func (h *UnitHandler) RotateReferral(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid unit id")
		return
	}

	code, err := h.unitService.RotateReferralCode(actor, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"referral_code": code})
}

// Join attaches the acting user to a unit via its referral code.
// POST /api/units/join
func (h *UnitHandler) Join(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		response.Unauthorized(c, "not authenticated")
		return
	}

	var req struct {
		ReferralCode string `json:"referral_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	assignment, err := h.unitService.JoinByReferral(userID, req.ReferralCode)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, assignment)
}
