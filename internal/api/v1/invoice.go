package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/service"
)

type InvoiceHandler struct {
	invoiceService    service.InvoiceService
	generationService service.GenerationService
	lifecycleService  service.LifecycleService
	logger            *logger.Logger
}

func NewInvoiceHandler(
	invoiceService service.InvoiceService,
	generationService service.GenerationService,
	lifecycleService service.LifecycleService,
	logger *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:    invoiceService,
		generationService: generationService,
		lifecycleService:  lifecycleService,
		logger:            logger,
	}
}

// @Summary Generate invoice
// @Description Generate a draft invoice from a free-text description
// @Tags Invoices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param invoice body dto.GenerateInvoiceRequest true "Generation request"
// @Success 200 {object} dto.GenerateInvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 429 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/generate [post]
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.generationService.Generate(c.Request.Context(), scope, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Send invoice
// @Description Email the invoice to its client and mark it sent
// @Tags Invoices
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.SendInvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/{id}/send [post]
func (h *InvoiceHandler) SendInvoice(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	resp, err := h.lifecycleService.Send(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update invoice status
// @Description Move the invoice to a new status
// @Tags Invoices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Invoice ID"
// @Param status body dto.UpdateInvoiceStatusRequest true "New status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.lifecycleService.SetStatus(c.Request.Context(), scope, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List invoices
// @Description List the tenant's invoices, newest first
// @Tags Invoices
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Status filter (draft, sent, paid, cancelled, all)"
// @Param search query string false "Case-insensitive match on client name"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	var query dto.ListInvoicesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), scope, query.ToFilter())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get invoice
// @Description Get an invoice with its items
// @Tags Invoices
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceDetailResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}

	resp, err := h.invoiceService.GetInvoice(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
