package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
)

// InstallmentRepository accesses installment plans and their periods
type InstallmentRepository interface {
	CreatePlan(ctx context.Context, plan *entity.InstallmentPlan) error
	// GetPlanByOrder returns the plan with its periods, or nil when the order
	// carries no installment plan
	GetPlanByOrder(ctx context.Context, orderID uuid.UUID) (*entity.InstallmentPlan, error)
	// GetPlanByID returns the plan without periods, or nil when absent
	GetPlanByID(ctx context.Context, planID uuid.UUID) (*entity.InstallmentPlan, error)
	GetPeriod(ctx context.Context, periodID uuid.UUID) (*entity.InstallmentPeriod, error)
	// MarkPeriodPaid flips an unpaid period to paid. Returns false when the
	// period was already paid.
	MarkPeriodPaid(ctx context.Context, periodID uuid.UUID, paidAt time.Time) (bool, error)
}
