package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inventorypos/salesdesk/internal/api/dto"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/service"
)

type SalesHandler struct {
	service service.SalesSessionService
	log     *logger.Logger
}

func NewSalesHandler(service service.SalesSessionService, log *logger.Logger) *SalesHandler {
	return &SalesHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get the current draft
// @Description Get the invoice draft of the counter, starting one if needed
// @Tags Sales
// @Produce json
// @Success 200 {object} dto.DraftResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /sales/draft [get]
func (h *SalesHandler) GetDraft(c *gin.Context) {
	resp, err := h.service.GetDraft(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Select the customer
// @Description Select the customer of the current draft by id or name
// @Tags Sales
// @Accept json
// @Produce json
// @Param request body dto.SelectCustomerRequest true "Customer"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /sales/customer [put]
func (h *SalesHandler) SelectCustomer(c *gin.Context) {
	var req dto.SelectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SelectCustomer(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Add a line item
// @Description Add a product to the current draft
// @Tags Sales
// @Accept json
// @Produce json
// @Param request body dto.AddLineItemRequest true "Line item"
// @Success 201 {object} dto.DraftResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /sales/items [post]
func (h *SalesHandler) AddLineItem(c *gin.Context) {
	var req dto.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AddLineItem(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Remove a line item
// @Description Remove the line item at a 0-based index
// @Tags Sales
// @Produce json
// @Param index path int true "Line item index"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /sales/items/{index} [delete]
func (h *SalesHandler) RemoveLineItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Line item index must be a number").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RemoveLineItem(c.Request.Context(), index)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Clear line items
// @Tags Sales
// @Produce json
// @Success 200 {object} dto.DraftResponse
// @Router /sales/items [delete]
func (h *SalesHandler) ClearLineItems(c *gin.Context) {
	resp, err := h.service.ClearLineItems(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update adjustments
// @Description Set shipping, tax, discount, payment and notes of the current draft
// @Tags Sales
// @Accept json
// @Produce json
// @Param request body dto.UpdateAdjustmentsRequest true "Adjustments"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /sales/adjustments [put]
func (h *SalesHandler) UpdateAdjustments(c *gin.Context) {
	var req dto.UpdateAdjustmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateAdjustments(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get totals
// @Tags Sales
// @Produce json
// @Success 200 {object} dto.TotalsResponse
// @Router /sales/totals [get]
func (h *SalesHandler) GetTotals(c *gin.Context) {
	resp, err := h.service.GetTotals(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Commit the draft
// @Description Save the current draft as an invoice and start the next one
// @Tags Sales
// @Produce json
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 503 {object} ierr.ErrorResponse
// @Router /sales/commit [post]
func (h *SalesHandler) Commit(c *gin.Context) {
	resp, err := h.service.Commit(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Reset the draft
// @Description Discard the current draft and start a new one with a new invoice number
// @Tags Sales
// @Produce json
// @Success 200 {object} dto.DraftResponse
// @Router /sales/reset [post]
func (h *SalesHandler) Reset(c *gin.Context) {
	resp, err := h.service.Reset(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get an invoice
// @Tags Sales
// @Produce json
// @Param number path string true "Invoice number"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /sales/invoices/{number} [get]
func (h *SalesHandler) GetInvoice(c *gin.Context) {
	resp, err := h.service.GetInvoice(c.Request.Context(), c.Param("number"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
