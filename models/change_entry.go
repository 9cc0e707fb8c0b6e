package models

import (
	"time"
)

// Change kinds recorded in the history table.
const (
	ChangeCreate = "create"
	ChangeUpdate = "update"
	ChangeDelete = "delete"
)

// ChangeEntry is one append-only audit record of a product mutation.
// The application never updates or deletes these rows.
type ChangeEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductID     uint      `gorm:"not null" json:"product_id"`
	UserID        uint      `gorm:"not null" json:"user_id"`
	ChangeType    string    `gorm:"not null;check:change_type IN ('create','update','delete')" json:"change_type"`
	ChangeDetails string    `json:"change_details"`
	ChangedAt     time.Time `gorm:"autoCreateTime" json:"changed_at"`
}

func (e *ChangeEntry) TableName() string {
	return "change_history"
}

// AllModels returns every entity in creation order: parent tables
// before the ones referencing them.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Product{},
		&ChangeEntry{},
	}
}
