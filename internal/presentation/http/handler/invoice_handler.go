package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/application/service"
	"github.com/kamandelane/tillpoint-api/internal/presentation/http/dto/response"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &pagination.PaginationParams{}
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	search := c.Query("search")

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// GetBySale handles looking up the invoice that belongs to a sale
func (h *InvoiceHandler) GetBySale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("saleId"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoiceBySaleID(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Download handles downloading an invoice as a PDF
func (h *InvoiceHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	buf, invoiceNo, err := h.invoiceService.DownloadInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoiceNo+".pdf"))
	c.Data(200, "application/pdf", buf.Bytes())
}

// DownloadBySale handles downloading a sale's invoice as a PDF
func (h *InvoiceHandler) DownloadBySale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("saleId"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	buf, invoiceNo, err := h.invoiceService.DownloadInvoiceBySaleID(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoiceNo+".pdf"))
	c.Data(200, "application/pdf", buf.Bytes())
}
