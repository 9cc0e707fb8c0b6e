package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/productcatalog/webapp/models"
)

// Initialize brings the store up to the current schema. A fresh file
// gets all four tables plus the demo data; an opened pre-history file
// only gets the change_history table added. Safe to call on every
// launch.
func Initialize(db *gorm.DB) error {
	migrator := db.Migrator()

	if !migrator.HasTable(&models.User{}) {
		log.Println("empty store, creating schema and seed data")
		if err := db.AutoMigrate(models.AllModels()...); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		if err := Seed(db); err != nil {
			return fmt.Errorf("failed to seed store: %w", err)
		}
		return nil
	}

	// Older database files predate the change history table.
	if !migrator.HasTable(&models.ChangeEntry{}) {
		log.Println("adding missing change_history table")
		if err := migrator.CreateTable(&models.ChangeEntry{}); err != nil {
			return fmt.Errorf("failed to add change_history table: %w", err)
		}
	}

	return nil
}
