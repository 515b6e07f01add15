package handlers

import (
	"strconv"

	"github.com/basecode360/traintrack/internal/services"
	"github.com/basecode360/traintrack/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RosterHandler struct {
	rosterService *services.RosterService
	scope         *services.ScopeService
}

func NewRosterHandler(db *gorm.DB) *RosterHandler {
	return &RosterHandler{
		rosterService: services.NewRosterService(db),
		scope:         services.NewScopeService(db),
	}
}

// List returns the personnel visible to the acting user.
// GET /api/personnel
func (h *RosterHandler) List(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	var req services.RosterListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	users, err := h.rosterService.List(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, users)
}

// GetByID returns a single person in the actor's scope.
// GET /api/personnel/:id
func (h *RosterHandler) GetByID(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.rosterService.GetByID(actor, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, user)
}

// UpdateProfile edits a person's profile. Self-edits are always allowed;
// edits to others require leadership over them.
// PUT /api/personnel/:id
func (h *RosterHandler) UpdateProfile(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.rosterService.UpdateProfile(actor, uint(id), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, user)
}

// UnitLeader returns the resolved leader of a unit, if any.
// GET /api/units/:id/leader
func (h *RosterHandler) UnitLeader(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid unit id")
		return
	}

	leader, err := h.rosterService.UnitLeader(actor, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, leader)
}
