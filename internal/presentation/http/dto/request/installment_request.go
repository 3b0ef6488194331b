package request

// ComputePlanRequest represents the request to compute an amortization plan
// without persisting anything
type ComputePlanRequest struct {
	Principal    int64   `json:"principal" binding:"required"`
	DownPayment  int64   `json:"down_payment"`
	MonthlyRate  float64 `json:"monthly_rate"`
	PeriodCount  int     `json:"period_count"`
	PeriodAmount int64   `json:"period_amount"`
}

// PayPeriodRequest represents the request to settle an installment period
type PayPeriodRequest struct {
	PaidAt *string `json:"paid_at"`
}
