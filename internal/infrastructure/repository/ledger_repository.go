package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	domainRepo "github.com/novapos/novapos-api/internal/domain/repository"
	"github.com/novapos/novapos-api/pkg/pagination"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository. The interface exposes
// no update or delete: ledger rows are immutable once written.
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(entry).Error
}

// Latest returns the head of the running-balance chain. The chain is
// defined by append order, so ordering here must follow insertion and
// never entry_date, which is caller-supplied and may lie in the future.
func (r *ledgerRepository) Latest(ctx context.Context, customerID uuid.UUID) (*entity.LedgerEntry, error) {
	var entry entity.LedgerEntry
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// LatestAsOf filters by entry_date but still walks the chain in append
// order within the window.
func (r *ledgerRepository) LatestAsOf(ctx context.Context, customerID uuid.UUID, asOf time.Time) (*entity.LedgerEntry, error) {
	var entry entity.LedgerEntry
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("customer_id = ? AND entry_date <= ?", customerID, asOf).
		Order("created_at DESC, id DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ledgerRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) List(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.LedgerEntry, int64, error) {
	var entries []entity.LedgerEntry
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.LedgerEntry{}).
		Where("customer_id = ?", customerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC, id DESC").
		Find(&entries).Error

	return entries, total, err
}
