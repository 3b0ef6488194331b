package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ItemType classifies what an order line sells
type ItemType int

const (
	// ItemTypeTrackedUnit is a uniquely serialized unit with a status lifecycle
	ItemTypeTrackedUnit ItemType = 0
	// ItemTypeFungibleProduct is a counted product with an integer quantity
	ItemTypeFungibleProduct ItemType = 1
	// ItemTypeService carries no stock coupling at all
	ItemTypeService ItemType = 2
)

func (t ItemType) String() string {
	switch t {
	case ItemTypeTrackedUnit:
		return "TrackedUnit"
	case ItemTypeFungibleProduct:
		return "FungibleProduct"
	case ItemTypeService:
		return "Service"
	}
	return fmt.Sprintf("ItemType(%d)", int(t))
}

// Valid reports whether the type is one of the known item types
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeTrackedUnit, ItemTypeFungibleProduct, ItemTypeService:
		return true
	}
	return false
}

// RequiresItemRef reports whether lines of this type must reference a stock record
func (t ItemType) RequiresItemRef() bool {
	return t != ItemTypeService
}

func (t ItemType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ItemType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ItemType(i)
		return nil
	}
	switch str {
	case "TrackedUnit", "tracked-unit":
		*t = ItemTypeTrackedUnit
	case "FungibleProduct", "fungible-product":
		*t = ItemTypeFungibleProduct
	case "Service", "service":
		*t = ItemTypeService
	default:
		return fmt.Errorf("unknown item type %q", str)
	}
	return nil
}

// ParseItemType parses an item type from its string form
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "TrackedUnit", "tracked-unit":
		return ItemTypeTrackedUnit, nil
	case "FungibleProduct", "fungible-product":
		return ItemTypeFungibleProduct, nil
	case "Service", "service":
		return ItemTypeService, nil
	}
	return ItemTypeTrackedUnit, fmt.Errorf("unknown item type %q", s)
}

func (t ItemType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ItemType) Scan(value interface{}) error {
	if value == nil {
		*t = ItemTypeTrackedUnit
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ItemType(v)
	case int:
		*t = ItemType(v)
	}
	return nil
}
