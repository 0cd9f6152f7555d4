package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/service"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// @Summary Dashboard stats
// @Description Invoice counts and paid revenue for the tenant
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.DashboardStatsResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	resp, err := h.dashboardService.GetStats(c.Request.Context(), scope)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
