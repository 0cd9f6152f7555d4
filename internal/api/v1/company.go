package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/service"
)

type CompanyHandler struct {
	companyService service.CompanyService
	logger         *logger.Logger
}

func NewCompanyHandler(companyService service.CompanyService, logger *logger.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

// @Summary Get current company
// @Tags Companies
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /companies/current [get]
func (h *CompanyHandler) GetCurrentCompany(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	resp, err := h.companyService.GetCurrentCompany(c.Request.Context(), scope)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Create company
// @Tags Companies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param company body dto.CreateCompanyRequest true "Company"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.companyService.CreateCompany(c.Request.Context(), scope, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Update company
// @Tags Companies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Company ID"
// @Param company body dto.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} dto.CompanyResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /companies/{id} [patch]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.companyService.UpdateCompany(c.Request.Context(), scope, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
