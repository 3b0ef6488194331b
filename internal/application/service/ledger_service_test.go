package service

import (
	"context"
	"testing"
	"time"

	"github.com/novapos/novapos-api/internal/domain/enum"
	"github.com/novapos/novapos-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_RunningBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Tono Prasetyo")

	first, err := env.ledger.Append(ctx, customer.ID, nil, "Credit sale", 500_000, 0, testDate())
	require.NoError(t, err)
	assert.Equal(t, int64(500_000), first.Balance)

	second, err := env.ledger.Append(ctx, customer.ID, nil, "Payment received", 0, 500_000, testDate().AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Zero(t, second.Balance)

	balance, err := env.ledger.BalanceAsOf(ctx, customer.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestLedger_BalanceAsOfDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Lina Kusuma")

	_, err := env.ledger.Append(ctx, customer.ID, nil, "Credit sale", 800_000, 0, testDate())
	require.NoError(t, err)
	_, err = env.ledger.Append(ctx, customer.ID, nil, "Payment received", 0, 300_000, testDate().AddDate(0, 1, 0))
	require.NoError(t, err)

	// Between the two rows only the debit counts
	asOf := testDate().AddDate(0, 0, 10)
	balance, err := env.ledger.BalanceAsOf(ctx, customer.ID, &asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(800_000), balance)

	latest, err := env.ledger.BalanceAsOf(ctx, customer.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(500_000), latest)
}

func TestLedger_FutureDatedOrderDoesNotReorderChain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createCustomer(t, "Agus Wijaya")
	unit := env.createStockUnit(t, "MH1-040", 9_000_000)

	// The order carries a caller-supplied date a week ahead, but the
	// reversing credit from the cancellation is stamped with now. The
	// chain must follow append order, not the dates on the rows.
	order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
		CustomerID:  &customer.ID,
		PaymentMode: enum.PaymentModeCredit,
		OrderDate:   time.Now().UTC().AddDate(0, 0, 7),
		Lines:       []OrderLineInput{trackedLine(unit)},
	})
	require.NoError(t, err)
	require.NoError(t, env.orders.CancelOrder(ctx, order.ID, nil))

	balance, err := env.ledger.BalanceAsOf(ctx, customer.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, balance)

	next, err := env.ledger.Append(ctx, customer.ID, nil, "Credit sale", 100_000, 0, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), next.Balance)
}

func TestLedger_EmptyCustomerHasZeroBalance(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Fitri Amalia")

	balance, err := env.ledger.BalanceAsOf(context.Background(), customer.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, balance)

	asOf := time.Now().UTC()
	balance, err = env.ledger.BalanceAsOf(context.Background(), customer.ID, &asOf)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestLedger_StatementNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Hendra Gunawan")

	_, err := env.ledger.Append(ctx, customer.ID, nil, "Credit sale", 1_000_000, 0, testDate())
	require.NoError(t, err)
	_, err = env.ledger.Append(ctx, customer.ID, nil, "Payment received", 0, 400_000, testDate().AddDate(0, 1, 0))
	require.NoError(t, err)

	params := pagination.DefaultPagination()
	result, err := env.ledger.Statement(ctx, customer.ID, params)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
	assert.Equal(t, "Payment received", result.Items[0].Description)
	assert.Equal(t, "Credit sale", result.Items[1].Description)
}

func TestCustomerService_GetBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Wati Suharti")

	_, err := env.ledger.Append(ctx, customer.ID, nil, "Credit sale", 250_000, 0, testDate())
	require.NoError(t, err)

	balance, err := env.customers.GetBalance(ctx, customer.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(250_000), balance)
}
