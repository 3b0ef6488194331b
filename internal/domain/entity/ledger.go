package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerEntry is one immutable double-entry bookkeeping row against a
// customer's running balance. Rows are append-only: corrections are new
// reversing rows, never updates or deletes of existing ones.
type LedgerEntry struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"customer_id"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	EntryDate   time.Time  `gorm:"not null;index" json:"entry_date"`
	Description string     `gorm:"size:255;not null" json:"description"`
	Debit       int64      `gorm:"default:0" json:"debit"`
	Credit      int64      `gorm:"default:0" json:"credit"`
	// Balance is the running balance after this row:
	// balance_n = balance_{n-1} + debit_n - credit_n
	Balance   int64     `gorm:"not null" json:"balance"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new ledger entry
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
