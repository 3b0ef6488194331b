package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/application/service"
	"github.com/novapos/novapos-api/internal/domain/enum"
	"github.com/novapos/novapos-api/internal/presentation/http/dto/request"
	"github.com/novapos/novapos-api/internal/presentation/http/dto/response"
)

// StockHandler handles stock unit and product HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// RegisterUnit handles registering a tracked stock unit
func (h *StockHandler) RegisterUnit(c *gin.Context) {
	var req request.RegisterStockUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var productID *uuid.UUID
	if req.ProductID != nil {
		id, err := uuid.Parse(*req.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product_id")
			return
		}
		productID = &id
	}

	unit, err := h.stockService.RegisterStockUnit(c.Request.Context(), &service.RegisterStockUnitInput{
		Serial:        req.Serial,
		Name:          req.Name,
		ProductID:     productID,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock unit registered successfully", unit)
}

// GetUnit handles retrieving a tracked stock unit
func (h *StockHandler) GetUnit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid stock unit ID")
		return
	}

	unit, err := h.stockService.GetStockUnit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock unit retrieved successfully", unit)
}

// ListUnits handles listing tracked stock units
func (h *StockHandler) ListUnits(c *gin.Context) {
	params := paginationFromQuery(c)
	search := c.Query("search")

	var status *enum.StockStatus
	if statusStr := c.Query("status"); statusStr != "" {
		parsed, err := enum.ParseStockStatus(statusStr)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		status = &parsed
	}

	result, err := h.stockService.ListStockUnits(c.Request.Context(), params, status, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock units retrieved successfully", result)
}

// RegisterProduct handles registering a fungible product
func (h *StockHandler) RegisterProduct(c *gin.Context) {
	var req request.RegisterProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.stockService.RegisterProduct(c.Request.Context(), &service.RegisterProductInput{
		Name:      req.Name,
		Code:      req.Code,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product registered successfully", product)
}

// GetProduct handles retrieving a product
func (h *StockHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.stockService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// ListProducts handles listing products
func (h *StockHandler) ListProducts(c *gin.Context) {
	params := paginationFromQuery(c)
	search := c.Query("search")

	result, err := h.stockService.ListProducts(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// RestockProduct handles adding quantity to a product
func (h *StockHandler) RestockProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.RestockProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.stockService.RestockProduct(c.Request.Context(), id, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product restocked successfully", product)
}
