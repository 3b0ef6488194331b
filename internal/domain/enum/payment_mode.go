package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMode represents how an order is settled
type PaymentMode int

const (
	PaymentModeCash   PaymentMode = 0
	PaymentModeCredit PaymentMode = 1
)

func (m PaymentMode) String() string {
	return [...]string{"Cash", "Credit"}[m]
}

// Valid reports whether the mode is one of the known payment modes
func (m PaymentMode) Valid() bool {
	return m == PaymentModeCash || m == PaymentModeCredit
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMode(i)
		return nil
	}
	switch str {
	case "Cash", "cash":
		*m = PaymentModeCash
	case "Credit", "credit":
		*m = PaymentModeCredit
	default:
		return fmt.Errorf("unknown payment mode %q", str)
	}
	return nil
}

// ParsePaymentMode parses a payment mode from its string form
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch s {
	case "Cash", "cash":
		return PaymentModeCash, nil
	case "Credit", "credit":
		return PaymentModeCredit, nil
	}
	return PaymentModeCash, fmt.Errorf("unknown payment mode %q", s)
}

func (m PaymentMode) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentModeCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMode(v)
	case int:
		*m = PaymentMode(v)
	}
	return nil
}
