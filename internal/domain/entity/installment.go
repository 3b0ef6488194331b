package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// InstallmentPlan represents the amortization schedule attached to a
// credit-backed order
type InstallmentPlan struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	CustomerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Principal     int64          `gorm:"not null" json:"principal"`
	DownPayment   int64          `gorm:"default:0" json:"down_payment"`
	MonthlyRate   float64        `gorm:"not null" json:"monthly_rate"`
	PeriodCount   int            `gorm:"not null" json:"period_count"`
	PeriodAmount  int64          `gorm:"not null" json:"period_amount"`
	FinancedTotal int64          `gorm:"not null" json:"financed_total"`
	StartDate     time.Time      `gorm:"not null" json:"start_date"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order    Order               `gorm:"foreignKey:OrderID" json:"-"`
	Customer Customer            `gorm:"foreignKey:CustomerID" json:"-"`
	Periods  []InstallmentPeriod `gorm:"foreignKey:PlanID" json:"periods,omitempty"`
}

// BeforeCreate generates a UUID before creating a new installment plan
func (p *InstallmentPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InstallmentPlan model
func (InstallmentPlan) TableName() string {
	return "installment_plans"
}

// InstallmentPeriod is one due amount in a plan, carrying its own paid state
type InstallmentPeriod struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	PlanID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"plan_id"`
	Sequence  int               `gorm:"not null" json:"sequence"`
	DueDate   time.Time         `gorm:"not null" json:"due_date"`
	AmountDue int64             `gorm:"not null" json:"amount_due"`
	Status    enum.PeriodStatus `gorm:"default:0" json:"status"`
	PaidAt    *time.Time        `json:"paid_at,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relationships
	Plan InstallmentPlan `gorm:"foreignKey:PlanID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new installment period
func (p *InstallmentPeriod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InstallmentPeriod model
func (InstallmentPeriod) TableName() string {
	return "installment_periods"
}
