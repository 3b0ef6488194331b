package repository

import (
	"context"

	domainRepo "github.com/novapos/novapos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txKey struct{}

// WithTx returns a context carrying the transaction handle
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFromContext resolves the transaction handle from the context, falling
// back to the given root handle. Repositories call this on every operation
// so the same code runs inside and outside a transaction.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a GORM-backed transaction manager
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &gormTxManager{db: db}
}

// WithinTx runs fn inside one transaction. GORM commits on nil, rolls back
// on error or panic, so no exit path can leak a half-applied write.
func (m *gormTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
