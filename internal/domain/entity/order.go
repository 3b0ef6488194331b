package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a multi-line sales transaction.
//
// A canceled order is never hard-deleted. Cancellation flips the status and
// records cancel metadata so the ledger history behind a credit sale stays
// reachable forever.
type Order struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID     *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	OrderDate      time.Time        `gorm:"not null" json:"order_date"`
	Status         enum.OrderStatus `gorm:"default:0" json:"status"`
	PaymentMode    enum.PaymentMode `gorm:"default:0" json:"payment_mode"`
	SubTotal       int64            `gorm:"default:0" json:"sub_total"`
	ItemsDiscount  int64            `gorm:"default:0" json:"items_discount"`
	GlobalDiscount int64            `gorm:"default:0" json:"global_discount"`
	TaxPercent     float64          `gorm:"default:0" json:"tax_percent"`
	TaxableAmount  int64            `gorm:"default:0" json:"taxable_amount"`
	TaxAmount      int64            `gorm:"default:0" json:"tax_amount"`
	GrandTotal     int64            `gorm:"default:0" json:"grand_total"`
	InvoiceNo      string           `gorm:"size:100;unique;not null" json:"invoice_no"`
	Notes          *string          `gorm:"type:text" json:"notes,omitempty"`
	CanceledAt     *time.Time       `json:"canceled_at,omitempty"`
	CancelReason   *string          `gorm:"type:text" json:"cancel_reason,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// IsCreditBacked reports whether the order posted a ledger debit on creation
func (o *Order) IsCreditBacked() bool {
	return o.PaymentMode == enum.PaymentModeCredit && o.GrandTotal > 0 && o.CustomerID != nil
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine represents a single line item in an order
type OrderLine struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemType    enum.ItemType  `gorm:"not null" json:"item_type"`
	ItemID      *uuid.UUID     `gorm:"type:uuid;index" json:"item_id,omitempty"`
	Description string         `gorm:"size:255" json:"description"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   int64          `gorm:"not null" json:"unit_price"`
	Discount    int64          `gorm:"default:0" json:"discount"`
	TotalPrice  int64          `gorm:"not null" json:"total_price"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}
