package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// @Summary Login
// @Description Log in with an email address. Only available with the email auth provider.
// @Tags Auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.logger.Errorw("failed to login", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Current user
// @Description Get the authenticated user
// @Tags Auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	resp, err := h.authService.Me(c.Request.Context(), scope)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Logout
// @Description Record a logout for the authenticated user
// @Tags Auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	resp, err := h.authService.Logout(c.Request.Context(), scope)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
