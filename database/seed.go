package database

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/productcatalog/webapp/models"
)

// Seed inserts the demo accounts, categories, products and history
// rows a fresh store starts with.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		users := []models.User{
			{Login: "admin", Password: "admin123", Role: models.RoleAdmin, FullName: "Администратор системы"},
			{Login: "user", Password: "user123", Role: models.RoleUser, FullName: "Обычный пользователь"},
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		categories := []models.Category{
			{Name: "Электроника", Description: "Электронные устройства и компоненты"},
			{Name: "Одежда", Description: "Одежда и аксессуары"},
			{Name: "Продукты питания", Description: "Продукты и напитки"},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		products := []models.Product{
			{
				Name:          "Смартфон X",
				Description:   "Новейший смартфон с отличной камерой",
				Price:         decimal.RequireFromString("599.99"),
				CategoryID:    categories[0].ID,
				StockQuantity: 50,
				Manufacturer:  "ТехноКорп",
			},
			{
				Name:          "Джинсы",
				Description:   "Классические синие джинсы",
				Price:         decimal.RequireFromString("49.99"),
				CategoryID:    categories[1].ID,
				StockQuantity: 100,
				Manufacturer:  "МодныйДом",
			},
			{
				Name:          "Яблоки",
				Description:   "Свежие яблоки, 1 кг",
				Price:         decimal.RequireFromString("2.99"),
				CategoryID:    categories[2].ID,
				StockQuantity: 200,
				Manufacturer:  "ФруктовыйСад",
			},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		history := []models.ChangeEntry{
			{ProductID: products[0].ID, UserID: users[0].ID, ChangeType: models.ChangeCreate, ChangeDetails: "Добавлен новый продукт: Смартфон X"},
			{ProductID: products[1].ID, UserID: users[0].ID, ChangeType: models.ChangeCreate, ChangeDetails: "Добавлен новый продукт: Джинсы"},
			{ProductID: products[2].ID, UserID: users[1].ID, ChangeType: models.ChangeCreate, ChangeDetails: "Добавлен новый продукт: Яблоки"},
		}
		return tx.Create(&history).Error
	})
}
