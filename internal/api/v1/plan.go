package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/service"
)

type PlanHandler struct {
	planService service.PlanService
	logger      *logger.Logger
}

func NewPlanHandler(planService service.PlanService, logger *logger.Logger) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		logger:      logger,
	}
}

// @Summary List plans
// @Tags Plans
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.PlanResponse
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	resp, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
