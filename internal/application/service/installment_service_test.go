package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/novapos/novapos-api/internal/domain/entity"
	"github.com/novapos/novapos-api/internal/domain/enum"
	"github.com/novapos/novapos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createInstallmentOrder sets up a 12,000,000 credit sale financed over 12
// months at 2% with a 2,000,000 down payment, the worked example used across
// the finance tests.
func createInstallmentOrder(t *testing.T, env *testEnv) (*entity.Order, *entity.Customer) {
	t.Helper()
	ctx := context.Background()

	customer := env.createCustomer(t, "Dewi Lestari")
	unit := env.createStockUnit(t, "MH2-001", 12_000_000)

	order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
		CustomerID:  &customer.ID,
		PaymentMode: enum.PaymentModeCredit,
		OrderDate:   testDate(),
		Lines:       []OrderLineInput{trackedLine(unit)},
		Installment: &InstallmentInput{
			PeriodCount: 12,
			MonthlyRate: 0.02,
			DownPayment: 2_000_000,
		},
	})
	require.NoError(t, err)
	return order, customer
}

func TestCreateOrder_PersistsInstallmentPlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, customer := createInstallmentOrder(t, env)

	plan, err := env.installments.GetPlanByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, plan.CustomerID)
	assert.Equal(t, int64(12_000_000), plan.Principal)
	assert.Equal(t, int64(14_900_000), plan.FinancedTotal)
	assert.Equal(t, int64(1_075_000), plan.PeriodAmount)
	require.Len(t, plan.Periods, 12)

	for i, period := range plan.Periods {
		assert.Equal(t, i+1, period.Sequence)
		assert.Equal(t, enum.PeriodStatusUnpaid, period.Status)
		assert.Equal(t, int64(1_075_000), period.AmountDue)
		assert.Equal(t, testDate().AddDate(0, i+1, 0), period.DueDate.UTC())
	}
}

func TestCreateOrder_InstallmentToleranceRejectedWithoutOverride(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createCustomer(t, "Rina Hartati")
	unit := env.createStockUnit(t, "MH2-002", 12_000_000)

	input := &CreateOrderInput{
		CustomerID:  &customer.ID,
		PaymentMode: enum.PaymentModeCredit,
		OrderDate:   testDate(),
		Lines:       []OrderLineInput{trackedLine(unit)},
		Installment: &InstallmentInput{
			PeriodCount:  12,
			PeriodAmount: 5_000_000,
			MonthlyRate:  0.02,
			DownPayment:  2_000_000,
		},
	}
	_, err := env.orders.CreateOrder(ctx, input)
	require.Error(t, err)
	assert.True(t, apperror.IsToleranceExceeded(err))

	// The whole create rolled back, including the stock transition
	fresh := env.reloadUnit(t, unit)
	assert.Equal(t, enum.StockStatusInStock, fresh.Status)
	var orderCount int64
	require.NoError(t, env.db.Model(&entity.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	// The same schedule passes once the caller overrides
	input.Installment.Override = true
	order, err := env.orders.CreateOrder(ctx, input)
	require.NoError(t, err)

	plan, err := env.installments.GetPlanByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000), plan.PeriodAmount)
}

func TestPayPeriod_SettlesAndPostsCredit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, customer := createInstallmentOrder(t, env)
	plan, err := env.installments.GetPlanByOrder(ctx, order.ID)
	require.NoError(t, err)

	before, err := env.ledger.BalanceAsOf(ctx, customer.ID, nil)
	require.NoError(t, err)

	paidAt := testDate().AddDate(0, 1, 0)
	first := plan.Periods[0]
	require.NoError(t, env.installments.PayPeriod(ctx, first.ID, paidAt))

	reloaded, err := env.installments.GetPlanByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PeriodStatusPaid, reloaded.Periods[0].Status)
	require.NotNil(t, reloaded.Periods[0].PaidAt)
	assert.Equal(t, enum.PeriodStatusUnpaid, reloaded.Periods[1].Status)

	after, err := env.ledger.BalanceAsOf(ctx, customer.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, before-first.AmountDue, after)
}

func TestPayPeriod_TwiceIsConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	order, customer := createInstallmentOrder(t, env)
	plan, err := env.installments.GetPlanByOrder(ctx, order.ID)
	require.NoError(t, err)

	paidAt := testDate().AddDate(0, 1, 0)
	first := plan.Periods[0]
	require.NoError(t, env.installments.PayPeriod(ctx, first.ID, paidAt))

	err = env.installments.PayPeriod(ctx, first.ID, paidAt)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)

	// No double ledger credit
	var entries []entity.LedgerEntry
	require.NoError(t, env.db.Where("customer_id = ? AND credit > 0", customer.ID).Find(&entries).Error)
	assert.Len(t, entries, 1)
}

func TestPayPeriod_UnknownPeriod(t *testing.T) {
	env := newTestEnv(t)

	err := env.installments.PayPeriod(context.Background(), uuid.New(), time.Now().UTC())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
