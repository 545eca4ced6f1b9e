package repository

import (
	"go-parts-inventory/internal/model"

	"gorm.io/gorm"
)

// Migrate creates or extends the tables. Products first so the foreign key resolves.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Product{}, &model.Transaction{})
}
