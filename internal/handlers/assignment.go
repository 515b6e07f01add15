package handlers

import (
	"strconv"

	"github.com/basecode360/traintrack/internal/services"
	"github.com/basecode360/traintrack/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
	scope             *services.ScopeService
}

func NewAssignmentHandler(db *gorm.DB) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: services.NewAssignmentService(db),
		scope:             services.NewScopeService(db),
	}
}

// ListForUser returns a person's active assignments.
// GET /api/personnel/:id/assignments
func (h *AssignmentHandler) ListForUser(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	assignments, err := h.assignmentService.ListForUser(actor, uint(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, assignments)
}

// Apply adds and ends assignments for a person in one validated change.
// POST /api/personnel/:id/assignments
func (h *AssignmentHandler) Apply(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req services.ApplyAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	assignments, err := h.assignmentService.Apply(actor, uint(userID), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, assignments)
}

// Promote makes an attached assignment the person's primary.
// POST /api/personnel/:id/assignments/:assignmentId/promote
func (h *AssignmentHandler) Promote(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	assignmentID, err := strconv.ParseUint(c.Param("assignmentId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid assignment id")
		return
	}

	if err := h.assignmentService.Promote(actor, uint(userID), uint(assignmentID)); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "assignment promoted"})
}

// Remove ends a non-primary assignment.
// DELETE /api/personnel/:id/assignments/:assignmentId
func (h *AssignmentHandler) Remove(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	assignmentID, err := strconv.ParseUint(c.Param("assignmentId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid assignment id")
		return
	}

	if err := h.assignmentService.Remove(actor, uint(userID), uint(assignmentID)); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "assignment ended"})
}
