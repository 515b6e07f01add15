package handlers

import (
	"strconv"

	"github.com/basecode360/traintrack/internal/services"
	"github.com/basecode360/traintrack/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventHandler struct {
	eventService *services.EventService
	scope        *services.ScopeService
}

func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{
		eventService: services.NewEventService(db),
		scope:        services.NewScopeService(db),
	}
}

// List returns training events inside the actor's visible units.
// GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	var req services.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	events, err := h.eventService.List(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, events)
}

// GetByID returns a single training event.
// GET /api/events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	event, err := h.eventService.GetByID(actor, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, event)
}

// Create schedules a training event for a unit the actor leads.
// POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.Create(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, event)
}

// Update edits a training event.
// PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	var req services.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	event, err := h.eventService.Update(actor, uint(id), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, event)
}

// Delete removes a training event.
// DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	if err := h.eventService.Delete(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "event deleted"})
}

// Steps lists the 8-step training model labels.
// GET /api/events/steps
func (h *EventHandler) Steps(c *gin.Context) {
	response.Success(c, h.eventService.Steps())
}
