package migration

import (
	"fmt"

	"Invoice-Processing-System/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.InvoiceDocument{}); err != nil {
		return fmt.Errorf("error migrating invoice document table: %w", err)
	}
	return nil
}
