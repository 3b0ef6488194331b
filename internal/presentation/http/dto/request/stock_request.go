package request

// RegisterStockUnitRequest represents the request to register a tracked unit
type RegisterStockUnitRequest struct {
	Serial        string  `json:"serial" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	ProductID     *string `json:"product_id"`
	PurchasePrice int64   `json:"purchase_price"`
	SellingPrice  int64   `json:"selling_price"`
}

// RegisterProductRequest represents the request to register a fungible product
type RegisterProductRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// RestockProductRequest represents the request to add product quantity
type RestockProductRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}
