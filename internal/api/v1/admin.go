package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/service"
	"github.com/invoiceai/invoiceai/internal/types"
)

type AdminHandler struct {
	adminService service.AdminService
	logger       *logger.Logger
}

func NewAdminHandler(adminService service.AdminService, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// @Summary Tenant metrics
// @Description Per-tenant usage across the whole system
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.TenantMetricsResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /admin/tenants [get]
func (h *AdminHandler) ListTenantMetrics(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	resp, err := h.adminService.ListTenantMetrics(c.Request.Context(), scope)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Activity feed
// @Description Recent activity across tenants, newest first
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param action query string false "Exact action"
// @Param search query string false "Matches action, entity type, user email or tenant name"
// @Success 200 {array} dto.ActivityFeedEntry
// @Failure 403 {object} ierr.ErrorResponse
// @Router /admin/activity [get]
func (h *AdminHandler) ListActivity(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	var filter types.ActivityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.adminService.ListActivity(c.Request.Context(), scope, &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List users
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	resp, err := h.adminService.ListUsers(c.Request.Context(), scope)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update user
// @Description Move a user to another tenant or change their role
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.adminService.UpdateUser(c.Request.Context(), scope, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
