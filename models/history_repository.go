package models

import (
	"time"

	"gorm.io/gorm"
)

// HistoryRow is a change entry joined with the product and user names,
// the shape the history screen displays.
type HistoryRow struct {
	ID            uint      `json:"id"`
	ProductName   string    `json:"product_name"`
	UserName      string    `json:"user_name"`
	ChangeType    string    `json:"change_type"`
	ChangeDetails string    `json:"change_details"`
	ChangedAt     time.Time `json:"changed_at"`
}

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{
		db: db,
	}
}

// Append writes one audit row. Callers decide what to do with a
// failure; the mutation it describes has already committed.
func (r *HistoryRepository) Append(productID, userID uint, changeType, details string) error {
	entry := ChangeEntry{
		ProductID:     productID,
		UserID:        userID,
		ChangeType:    changeType,
		ChangeDetails: details,
	}
	return r.db.Create(&entry).Error
}

// List returns the history joined with product and user names, newest
// first. Entries whose product or user was deleted drop out of the
// report; the raw table keeps them.
func (r *HistoryRepository) List() ([]HistoryRow, error) {
	var rows []HistoryRow
	err := r.db.Model(&ChangeEntry{}).
		Select("change_history.id, products.name AS product_name, users.full_name AS user_name, change_history.change_type, change_history.change_details, change_history.changed_at").
		Joins("JOIN products ON products.id = change_history.product_id").
		Joins("JOIN users ON users.id = change_history.user_id").
		Order("change_history.changed_at DESC, change_history.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
