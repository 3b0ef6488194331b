package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/novapos/novapos-api/internal/application/service"
	"github.com/novapos/novapos-api/internal/domain/finance"
	"github.com/novapos/novapos-api/internal/presentation/http/dto/request"
	"github.com/novapos/novapos-api/internal/presentation/http/dto/response"
	"github.com/novapos/novapos-api/pkg/apperror"
)

// InstallmentHandler handles installment plan HTTP requests
type InstallmentHandler struct {
	installmentService *service.InstallmentService
}

// NewInstallmentHandler creates a new installment handler
func NewInstallmentHandler(installmentService *service.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService}
}

// ComputePlan handles computing an amortization plan without persisting it.
// A tolerance violation still returns the computed figures so the caller can
// decide whether to override.
func (h *InstallmentHandler) ComputePlan(c *gin.Context) {
	var req request.ComputePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	plan, err := h.installmentService.ComputePlan(finance.AmortizationInput{
		Principal:    req.Principal,
		DownPayment:  req.DownPayment,
		MonthlyRate:  req.MonthlyRate,
		PeriodCount:  req.PeriodCount,
		PeriodAmount: req.PeriodAmount,
	})
	if err != nil {
		if plan != nil {
			appErr := apperror.GetAppError(err)
			c.JSON(appErr.Code, response.APIResponse{
				Success: false,
				Message: appErr.Message,
				Data:    plan,
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Plan computed successfully", plan)
}

// GetByOrder handles retrieving the installment plan of an order
func (h *InstallmentHandler) GetByOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	plan, err := h.installmentService.GetPlanByOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installment plan retrieved successfully", plan)
}

// PayPeriod handles settling one installment period
func (h *InstallmentHandler) PayPeriod(c *gin.Context) {
	periodID, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid period ID")
		return
	}

	var req request.PayPeriodRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			response.BadRequest(c, "Invalid paid_at, expected RFC3339")
			return
		}
		paidAt = parsed
	}

	if err := h.installmentService.PayPeriod(c.Request.Context(), periodID, paidAt); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installment period paid successfully", nil)
}
