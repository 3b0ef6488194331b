package entity

import "time"

// SchemaVersion marks a named migration step as applied, so idempotent
// structural repairs are tracked instead of re-probed on every boot.
type SchemaVersion struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Step      string    `gorm:"size:100;uniqueIndex;not null" json:"step"`
	AppliedAt time.Time `gorm:"not null" json:"applied_at"`
}

// TableName returns the table name for the SchemaVersion model
func (SchemaVersion) TableName() string {
	return "schema_versions"
}
