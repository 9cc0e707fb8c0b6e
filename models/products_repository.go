package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRow is a product joined with its category name, the shape the
// products screen displays.
type ProductRow struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    uint            `json:"category_id"`
	StockQuantity int             `json:"stock_quantity"`
	Manufacturer  string          `json:"manufacturer"`
	CategoryName  string          `json:"category_name"`
}

// ProductFilters narrows the product listing. The zero value selects
// everything.
type ProductFilters struct {
	Search     string
	CategoryID uint
}

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// List returns products joined with their category name, oldest first.
// The category restriction is a parameterized predicate; the text
// search is applied on the fetched rows because SQLite's LIKE only
// folds ASCII case and would miss Cyrillic names.
func (r *ProductsRepository) List(filters ProductFilters) ([]ProductRow, error) {
	query := r.db.Model(&Product{}).
		Select("products.id, products.name, products.description, products.price, products.category_id, products.stock_quantity, products.manufacturer, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = products.category_id")

	if filters.CategoryID > 0 {
		query = query.Where("products.category_id = ?", filters.CategoryID)
	}

	var rows []ProductRow
	if err := query.Order("products.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(filters.Search))
	if needle == "" {
		return rows, nil
	}

	matched := make([]ProductRow, 0, len(rows))
	for _, row := range rows {
		if containsFold(row.Name, needle) ||
			containsFold(row.Description, needle) ||
			containsFold(row.Manufacturer, needle) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// containsFold reports whether s contains the already-lowercased
// needle, ignoring case.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductsRepository) Create(product *Product) error {
	return r.db.Create(product).Error
}

func (r *ProductsRepository) Update(product *Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductsRepository) Delete(id uint) error {
	res := r.db.Delete(&Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// CountByCategory counts the products referencing a category.
func (r *ProductsRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
