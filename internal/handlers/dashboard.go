package handlers

import (
	"github.com/basecode360/traintrack/internal/services"
	"github.com/basecode360/traintrack/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	scope            *services.ScopeService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db),
		scope:            services.NewScopeService(db),
	}
}

// GetStats returns dashboard statistics scoped to the actor's visible units.
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	actor, ok := resolveActor(c, h.scope)
	if !ok {
		return
	}

	var req services.DashboardStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.dashboardService.GetStats(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}
