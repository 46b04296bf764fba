package handler

import (
	"peaceconnect_service/internal/service"
	"peaceconnect_service/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats returns the admin overview counters.
// @Summary Dashboard counters
// @Tags admin
// @Produce json
// @Success 200 {object} utils.Response{data=service.DashboardStats}
// @Router /api/v1/admin/dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, stats)
}
