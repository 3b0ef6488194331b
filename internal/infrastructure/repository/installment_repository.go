package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/enum"
	domainRepo "github.com/novapos/novapos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository
func NewInstallmentRepository(db *gorm.DB) domainRepo.InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) CreatePlan(ctx context.Context, plan *entity.InstallmentPlan) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(plan).Error
}

func (r *installmentRepository) GetPlanByOrder(ctx context.Context, orderID uuid.UUID) (*entity.InstallmentPlan, error) {
	var plan entity.InstallmentPlan
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Periods", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		First(&plan, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *installmentRepository) GetPlanByID(ctx context.Context, planID uuid.UUID) (*entity.InstallmentPlan, error) {
	var plan entity.InstallmentPlan
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&plan, "id = ?", planID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *installmentRepository) GetPeriod(ctx context.Context, periodID uuid.UUID) (*entity.InstallmentPeriod, error) {
	var period entity.InstallmentPeriod
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&period, "id = ?", periodID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *installmentRepository) MarkPeriodPaid(ctx context.Context, periodID uuid.UUID, paidAt time.Time) (bool, error) {
	// Status guard keeps double payments out: the second attempt matches
	// zero rows.
	res := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.InstallmentPeriod{}).
		Where("id = ? AND status = ?", periodID, enum.PeriodStatusUnpaid).
		Updates(map[string]interface{}{
			"status":  enum.PeriodStatusPaid,
			"paid_at": paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
