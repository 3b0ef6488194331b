package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PeriodStatus represents the payment state of a single installment period
type PeriodStatus int

const (
	PeriodStatusUnpaid PeriodStatus = 0
	PeriodStatusPaid   PeriodStatus = 1
)

func (s PeriodStatus) String() string {
	return [...]string{"Unpaid", "Paid"}[s]
}

func (s PeriodStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PeriodStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PeriodStatus(i)
		return nil
	}
	switch str {
	case "Paid", "paid":
		*s = PeriodStatusPaid
	default:
		*s = PeriodStatusUnpaid
	}
	return nil
}

func (s PeriodStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PeriodStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PeriodStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PeriodStatus(v)
	case int:
		*s = PeriodStatus(v)
	}
	return nil
}
