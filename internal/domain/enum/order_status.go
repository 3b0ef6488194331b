package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus int

const (
	OrderStatusActive   OrderStatus = 0
	OrderStatusCanceled OrderStatus = 1
)

func (s OrderStatus) String() string {
	return [...]string{"Active", "Canceled"}[s]
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Active", "active":
		*s = OrderStatusActive
	case "Canceled", "canceled":
		*s = OrderStatusCanceled
	}
	return nil
}

// ParseOrderStatus parses an order status from its string form
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "Active", "active":
		return OrderStatusActive, nil
	case "Canceled", "canceled":
		return OrderStatusCanceled, nil
	}
	return OrderStatusActive, fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
