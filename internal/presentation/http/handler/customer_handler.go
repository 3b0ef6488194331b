package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/novapos/novapos-api/internal/application/service"
	"github.com/novapos/novapos-api/internal/presentation/http/dto/request"
	"github.com/novapos/novapos-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	ledgerService   *service.LedgerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, ledgerService *service.LedgerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		ledgerService:   ledgerService,
	}
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles retrieving a customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, &service.UpdateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	params := paginationFromQuery(c)
	search := c.Query("search")

	result, err := h.customerService.ListCustomers(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Balance handles retrieving a customer's outstanding balance, optionally as
// of a date via the as_of query parameter
func (h *CustomerHandler) Balance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	asOf, err := parseDateQuery(c, "as_of")
	if err != nil {
		response.BadRequest(c, "Invalid as_of date")
		return
	}

	balance, err := h.customerService.GetBalance(c.Request.Context(), id, asOf)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance retrieved successfully", gin.H{
		"customer_id": id,
		"balance":     balance,
	})
}

// Statement handles listing a customer's ledger entries, newest first
func (h *CustomerHandler) Statement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if _, err := h.customerService.GetCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	params := paginationFromQuery(c)
	result, err := h.ledgerService.Statement(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Ledger statement retrieved successfully", result)
}
