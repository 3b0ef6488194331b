package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockStatus_TransitionTable(t *testing.T) {
	// Every sellable state may move to Sold
	for _, s := range SellableStatuses() {
		assert.True(t, s.CanTransitionTo(StockStatusSold), "%s -> Sold", s)
	}

	// A sold unit comes back as returned, never silently as in-stock
	assert.True(t, StockStatusSold.CanTransitionTo(StockStatusReturned))
	assert.True(t, StockStatusSold.CanTransitionTo(StockStatusReturnedInstallment))
	assert.False(t, StockStatusSold.CanTransitionTo(StockStatusInStock))

	// No transitions out of thin air
	assert.False(t, StockStatusInStock.CanTransitionTo(StockStatusReturned))
	assert.False(t, StockStatusReturned.CanTransitionTo(StockStatusInStock))
	assert.False(t, StockStatusReturned.CanTransitionTo(StockStatusReturnedInstallment))
	assert.False(t, StockStatusSold.CanTransitionTo(StockStatusSold))
}

func TestStockStatus_Sellable(t *testing.T) {
	assert.True(t, StockStatusInStock.Sellable())
	assert.True(t, StockStatusReturned.Sellable())
	assert.True(t, StockStatusReturnedInstallment.Sellable())
	assert.False(t, StockStatusSold.Sellable())
}

func TestItemType_Valid(t *testing.T) {
	assert.True(t, ItemTypeTrackedUnit.Valid())
	assert.True(t, ItemTypeFungibleProduct.Valid())
	assert.True(t, ItemTypeService.Valid())
	assert.False(t, ItemType(9).Valid())

	assert.True(t, ItemTypeTrackedUnit.RequiresItemRef())
	assert.False(t, ItemTypeService.RequiresItemRef())
}
