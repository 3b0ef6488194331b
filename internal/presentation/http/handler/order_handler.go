package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/application/service"
	"github.com/novapos/novapos-api/internal/domain/enum"
	"github.com/novapos/novapos-api/internal/domain/repository"
	"github.com/novapos/novapos-api/internal/presentation/http/dto/request"
	"github.com/novapos/novapos-api/internal/presentation/http/dto/response"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func linesFromRequest(reqLines []request.OrderLineRequest) ([]service.OrderLineInput, error) {
	lines := make([]service.OrderLineInput, 0, len(reqLines))
	for _, rl := range reqLines {
		itemType, err := enum.ParseItemType(rl.ItemType)
		if err != nil {
			return nil, err
		}
		var itemID *uuid.UUID
		if rl.ItemID != nil {
			id, err := uuid.Parse(*rl.ItemID)
			if err != nil {
				return nil, err
			}
			itemID = &id
		}
		lines = append(lines, service.OrderLineInput{
			ItemType:    itemType,
			ItemID:      itemID,
			Description: rl.Description,
			Quantity:    rl.Quantity,
			UnitPrice:   rl.UnitPrice,
			Discount:    rl.Discount,
		})
	}
	return lines, nil
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	paymentMode, err := enum.ParsePaymentMode(req.PaymentMode)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	lines, err := linesFromRequest(req.Lines)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer_id")
			return
		}
		customerID = &id
	}

	orderDate := time.Now().UTC()
	if req.OrderDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.OrderDate)
		if err != nil {
			response.BadRequest(c, "Invalid order_date, expected RFC3339")
			return
		}
		orderDate = parsed
	}

	input := &service.CreateOrderInput{
		CustomerID:     customerID,
		PaymentMode:    paymentMode,
		OrderDate:      orderDate,
		GlobalDiscount: req.GlobalDiscount,
		TaxPercent:     req.TaxPercent,
		Notes:          req.Notes,
		Lines:          lines,
	}
	if req.Installment != nil {
		input.Installment = &service.InstallmentInput{
			PeriodCount:  req.Installment.PeriodCount,
			PeriodAmount: req.Installment.PeriodAmount,
			MonthlyRate:  req.Installment.MonthlyRate,
			DownPayment:  req.Installment.DownPayment,
			Override:     req.Installment.Override,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Preview handles computing order totals without persisting anything
func (h *OrderHandler) Preview(c *gin.Context) {
	var req request.PreviewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lines, err := linesFromRequest(req.Lines)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	summary := h.orderService.PreviewTotals(lines, req.GlobalDiscount, req.TaxPercent)
	response.OK(c, "Order totals computed", summary)
}

// Get handles retrieving an order with its lines
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseOrderStatus(statusStr)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		params.Status = &status
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer_id")
			return
		}
		params.CustomerID = &customerID
	}

	startDate, err := parseDateQuery(c, "start_date")
	if err != nil {
		response.BadRequest(c, "Invalid start_date")
		return
	}
	params.StartDate = startDate

	endDate, err := parseDateQuery(c, "end_date")
	if err != nil {
		response.BadRequest(c, "Invalid end_date")
		return
	}
	params.EndDate = endDate

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Cancel handles canceling an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), id, req.Reason); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order canceled successfully", nil)
}
