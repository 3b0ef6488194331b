package request

// OrderLineRequest represents one line of an order payload
type OrderLineRequest struct {
	ItemType    string  `json:"item_type" binding:"required"`
	ItemID      *string `json:"item_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" binding:"required"`
	UnitPrice   int64   `json:"unit_price"`
	Discount    int64   `json:"discount"`
}

// InstallmentRequest represents the optional financing block of a credit order
type InstallmentRequest struct {
	PeriodCount  int     `json:"period_count"`
	PeriodAmount int64   `json:"period_amount"`
	MonthlyRate  float64 `json:"monthly_rate"`
	DownPayment  int64   `json:"down_payment"`
	Override     bool    `json:"override"`
}

// CreateOrderRequest represents the request to create an order
type CreateOrderRequest struct {
	CustomerID     *string             `json:"customer_id"`
	PaymentMode    string              `json:"payment_mode" binding:"required"`
	OrderDate      *string             `json:"order_date"`
	GlobalDiscount int64               `json:"global_discount"`
	TaxPercent     float64             `json:"tax_percent"`
	Notes          *string             `json:"notes"`
	Lines          []OrderLineRequest  `json:"lines" binding:"required"`
	Installment    *InstallmentRequest `json:"installment"`
}

// PreviewOrderRequest represents the request to preview order totals
type PreviewOrderRequest struct {
	GlobalDiscount int64              `json:"global_discount"`
	TaxPercent     float64            `json:"tax_percent"`
	Lines          []OrderLineRequest `json:"lines" binding:"required"`
}

// CancelOrderRequest represents the request to cancel an order
type CancelOrderRequest struct {
	Reason *string `json:"reason"`
}
