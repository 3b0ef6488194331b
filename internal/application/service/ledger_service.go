package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/repository"
	"github.com/novapos/novapos-api/pkg/pagination"
)

// LedgerService maintains the append-only double-entry trail per customer.
// Rows are never mutated or deleted; a correction is a new reversing row.
type LedgerService struct {
	ledgerRepo repository.LedgerRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledgerRepo repository.LedgerRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

// Append inserts one immutable row. The running balance is derived from the
// latest row under the caller's transaction context:
// newBalance = previousBalance + debit - credit, debit increasing customer
// debt.
func (s *LedgerService) Append(ctx context.Context, customerID uuid.UUID, orderID *uuid.UUID, description string, debit, credit int64, date time.Time) (*entity.LedgerEntry, error) {
	var previous int64
	latest, err := s.ledgerRepo.Latest(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		previous = latest.Balance
	}

	entry := &entity.LedgerEntry{
		CustomerID:  customerID,
		OrderID:     orderID,
		EntryDate:   date,
		Description: description,
		Debit:       debit,
		Credit:      credit,
		Balance:     previous + debit - credit,
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// BalanceAsOf returns the running balance of the latest row at/before the
// given date, or the overall latest when asOf is nil. A customer without
// rows has balance 0; that is an answer, not an error.
func (s *LedgerService) BalanceAsOf(ctx context.Context, customerID uuid.UUID, asOf *time.Time) (int64, error) {
	var latest *entity.LedgerEntry
	var err error
	if asOf != nil {
		latest, err = s.ledgerRepo.LatestAsOf(ctx, customerID, *asOf)
	} else {
		latest, err = s.ledgerRepo.Latest(ctx, customerID)
	}
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, nil
	}
	return latest.Balance, nil
}

// Statement lists a customer's ledger rows, newest first
func (s *LedgerService) Statement(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.LedgerEntry], error) {
	entries, total, err := s.ledgerRepo.List(ctx, customerID, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}
