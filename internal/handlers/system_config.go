package handlers

import (
	"net/http"

	"github.com/basecode360/traintrack/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SystemConfigHandler struct {
	configService *services.SystemConfigService
}

func NewSystemConfigHandler(db *gorm.DB) *SystemConfigHandler {
	return &SystemConfigHandler{
		configService: services.NewSystemConfigService(db),
	}
}

func (h *SystemConfigHandler) GetLDAPConfig(c *gin.Context) {
	config := h.configService.GetLDAPConfig()
	c.JSON(http.StatusOK, config)
}

func (h *SystemConfigHandler) UpdateLDAPConfig(c *gin.Context) {
	var req services.UpdateLDAPConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.configService.UpdateLDAPConfig(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.configService.GetLDAPConfig())
}

func (h *SystemConfigHandler) GetInsightDigestConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.configService.GetInsightDigestConfig())
}

func (h *SystemConfigHandler) UpdateInsightDigestConfig(c *gin.Context) {
	var req services.InsightDigestConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Day < 0 || req.Day > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be 0-6"})
		return
	}
	if req.Hour < 0 || req.Hour > 23 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hour must be 0-23"})
		return
	}

	if err := h.configService.SetInsightDigestConfig(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if digest := services.GetDigestService(); digest != nil {
		digest.Reschedule()
	}

	c.JSON(http.StatusOK, h.configService.GetInsightDigestConfig())
}
