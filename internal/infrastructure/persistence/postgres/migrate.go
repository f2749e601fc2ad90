package postgres

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate cria/atualiza o schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
