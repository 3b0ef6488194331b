package repository

import "context"

// TxManager runs a function inside one database transaction.
//
// Every multi-step write (order create/cancel, installment payment, table
// rebuild) flows through WithinTx so interleaved requests never observe a
// partially-applied state. The transaction handle travels in the context;
// repositories resolve it before falling back to their root handle, so the
// same repository code works inside and outside a transaction.
type TxManager interface {
	// WithinTx begins a transaction, runs fn with a transaction-scoped
	// context, commits on nil and rolls back on error or panic.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
