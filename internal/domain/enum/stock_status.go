package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StockStatus represents the state of a uniquely tracked stock unit.
//
// Returned units stay sellable: a unit that came back from a canceled sale
// is a valid source for a new sale, it is never silently reset to InStock.
type StockStatus int

const (
	StockStatusInStock             StockStatus = 0
	StockStatusSold                StockStatus = 1
	StockStatusReturned            StockStatus = 2
	StockStatusReturnedInstallment StockStatus = 3
)

// stockTransitions is the allowed-transition table. Any transition absent
// from this table is rejected instead of written through.
var stockTransitions = map[StockStatus][]StockStatus{
	StockStatusInStock:             {StockStatusSold},
	StockStatusReturned:            {StockStatusSold},
	StockStatusReturnedInstallment: {StockStatusSold},
	StockStatusSold:                {StockStatusReturned, StockStatusReturnedInstallment},
}

func (s StockStatus) String() string {
	switch s {
	case StockStatusInStock:
		return "InStock"
	case StockStatusSold:
		return "Sold"
	case StockStatusReturned:
		return "Returned"
	case StockStatusReturnedInstallment:
		return "ReturnedInstallment"
	}
	return fmt.Sprintf("StockStatus(%d)", int(s))
}

// Sellable reports whether a unit in this state may be the source of a sale
func (s StockStatus) Sellable() bool {
	switch s {
	case StockStatusInStock, StockStatusReturned, StockStatusReturnedInstallment:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition table allows s -> target
func (s StockStatus) CanTransitionTo(target StockStatus) bool {
	for _, t := range stockTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// SellableStatuses returns every state a new sale may draw from
func SellableStatuses() []StockStatus {
	return []StockStatus{StockStatusInStock, StockStatusReturned, StockStatusReturnedInstallment}
}

func (s StockStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *StockStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = StockStatus(i)
		return nil
	}
	switch str {
	case "InStock", "in-stock":
		*s = StockStatusInStock
	case "Sold", "sold":
		*s = StockStatusSold
	case "Returned", "returned":
		*s = StockStatusReturned
	case "ReturnedInstallment", "returned-installment":
		*s = StockStatusReturnedInstallment
	default:
		return fmt.Errorf("unknown stock status %q", str)
	}
	return nil
}

// ParseStockStatus parses a stock status from its string form
func ParseStockStatus(s string) (StockStatus, error) {
	switch s {
	case "InStock", "in-stock":
		return StockStatusInStock, nil
	case "Sold", "sold":
		return StockStatusSold, nil
	case "Returned", "returned":
		return StockStatusReturned, nil
	case "ReturnedInstallment", "returned-installment":
		return StockStatusReturnedInstallment, nil
	}
	return StockStatusInStock, fmt.Errorf("unknown stock status %q", s)
}

func (s StockStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *StockStatus) Scan(value interface{}) error {
	if value == nil {
		*s = StockStatusInStock
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = StockStatus(v)
	case int:
		*s = StockStatus(v)
	}
	return nil
}
