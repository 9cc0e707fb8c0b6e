package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// It belongs to exactly one category and may carry an image payload.
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryID    uint            `gorm:"not null" json:"category_id"`
	Category      Category        `gorm:"foreignKey:CategoryID" json:"-"`
	StockQuantity int             `gorm:"not null" json:"stock_quantity"`
	Manufacturer  string          `json:"manufacturer"`
	Image         []byte          `gorm:"type:blob" json:"image,omitempty"`
}

func (p *Product) TableName() string {
	return "products"
}
