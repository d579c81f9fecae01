package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/application/service"
	"github.com/kamandelane/tillpoint-api/internal/domain/enum"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/kamandelane/tillpoint-api/internal/presentation/http/dto/response"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
	cartService *service.CartService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, cartService *service.CartService) *SaleHandler {
	return &SaleHandler{saleService: saleService, cartService: cartService}
}

// Checkout handles completing a sale. Line items come either from the
// request body or from a register's cart; the cart is cleared only
// after the sale succeeds.
func (h *SaleHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.CheckoutItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CheckoutItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	fromCart := false
	if len(items) == 0 && req.Register != nil && *req.Register != "" {
		cartItems, err := h.cartService.CheckoutItems(*req.Register)
		if err != nil {
			response.Error(c, err)
			return
		}
		items = cartItems
		fromCart = true
	}

	sale, err := h.saleService.Checkout(c.Request.Context(), &service.CheckoutInput{
		UserID:        *userID,
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
		PaymentAmount: req.PaymentAmount,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if fromCart {
		h.cartService.ClearCart(*req.Register)
	}

	response.Created(c, "Sale completed successfully", sale)
}

// List handles listing sales (supports both page-based and cursor-based pagination)
func (h *SaleHandler) List(c *gin.Context) {
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	applySaleFilter(params, &filter)

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// listWithCursor handles listing sales with cursor-based pagination
func (h *SaleHandler) listWithCursor(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	limit := 15
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	cursor := c.Query("cursor")
	direction := c.DefaultQuery("direction", "next")

	params := &repository.SaleCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    cursor,
			Direction: pagination.CursorDirection(direction),
			Limit:     limit,
		},
		Search: filter.Search,
	}
	applyCursorSaleFilter(params, &filter)

	result, err := h.saleService.ListSalesWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale with its line items
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// GetByReceiptNo handles looking up a sale by its receipt number
func (h *SaleHandler) GetByReceiptNo(c *gin.Context) {
	receiptNo := c.Param("receiptNo")
	if receiptNo == "" {
		response.BadRequest(c, "Receipt number is required")
		return
	}

	sale, err := h.saleService.GetSaleByReceiptNo(c.Request.Context(), receiptNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Cancel handles cancelling a sale and restoring its stock
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.CancelSale(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled successfully", nil)
}

// Export handles exporting the filtered sales history as an XLSX file
func (h *SaleHandler) Export(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 15},
		Search:     filter.Search,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}
	applySaleFilter(params, &filter)

	buf, err := h.saleService.ExportSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func applySaleFilter(params *repository.SaleFilterParams, filter *request.SaleFilterRequest) {
	status, customerID, userID, start, end := parseSaleFilter(filter)
	params.Status = status
	params.CustomerID = customerID
	params.UserID = userID
	params.StartDate = start
	params.EndDate = end
}

func applyCursorSaleFilter(params *repository.SaleCursorFilterParams, filter *request.SaleFilterRequest) {
	status, customerID, userID, start, end := parseSaleFilter(filter)
	params.Status = status
	params.CustomerID = customerID
	params.UserID = userID
	params.StartDate = start
	params.EndDate = end
}

func parseSaleFilter(filter *request.SaleFilterRequest) (*enum.SaleStatus, *uuid.UUID, *uuid.UUID, *time.Time, *time.Time) {
	var status *enum.SaleStatus
	switch filter.Status {
	case "completed", "Completed":
		s := enum.SaleStatusCompleted
		status = &s
	case "cancelled", "Cancelled":
		s := enum.SaleStatusCancelled
		status = &s
	}

	var customerID, userID *uuid.UUID
	if filter.CustomerID != "" {
		if id, err := uuid.Parse(filter.CustomerID); err == nil {
			customerID = &id
		}
	}
	if filter.UserID != "" {
		if id, err := uuid.Parse(filter.UserID); err == nil {
			userID = &id
		}
	}

	var start, end *time.Time
	if filter.StartDate != "" {
		if t, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			start = &t
		}
	}
	if filter.EndDate != "" {
		if t, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			// Include the whole end day
			t = t.Add(24*time.Hour - time.Nanosecond)
			end = &t
		}
	}

	return status, customerID, userID, start, end
}
