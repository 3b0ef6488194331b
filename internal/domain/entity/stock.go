package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockUnit is a uniquely tracked unit of stock with a status lifecycle.
//
// SaleDate is set only while the unit is Sold; ReturnDate only while it is
// Returned or ReturnedInstallment, and it is cleared when the unit re-enters
// Sold.
type StockUnit struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Serial        string           `gorm:"size:100;unique;not null" json:"serial"`
	Name          string           `gorm:"size:255;not null" json:"name"`
	ProductID     *uuid.UUID       `gorm:"type:uuid;index" json:"product_id,omitempty"`
	PurchasePrice int64            `gorm:"default:0" json:"purchase_price"`
	SellingPrice  int64            `gorm:"default:0" json:"selling_price"`
	Status        enum.StockStatus `gorm:"default:0;index" json:"status"`
	SaleDate      *time.Time       `json:"sale_date,omitempty"`
	ReturnDate    *time.Time       `json:"return_date,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock unit
func (u *StockUnit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockUnit model
func (StockUnit) TableName() string {
	return "stock_units"
}

// Product is a fungible, quantity-counted item. Quantity never goes below
// zero; decrements are applied as guarded conditional updates.
type Product struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"size:100;unique;not null" json:"code"`
	Quantity  int            `gorm:"default:0" json:"quantity"`
	UnitPrice int64          `gorm:"default:0" json:"unit_price"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
