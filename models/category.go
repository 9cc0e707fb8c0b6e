package models

// Category groups products. A category that still has products cannot
// be deleted; the guard lives in CategoriesRepository, not the store.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
}

func (c *Category) TableName() string {
	return "categories"
}
