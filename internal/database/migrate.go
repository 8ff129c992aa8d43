package database

import (
	"fmt"

	"github.com/sjperalta/obra-api/internal/models"
	"github.com/sjperalta/obra-api/pkg/logger"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
// Order matters: referenced tables first.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Project{},
		&models.Client{},
		&models.Unit{},
		&models.Contract{},
		&models.Installment{},
		&models.AuditLog{},
		&models.CodeSequence{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database schema migrated")
	return nil
}
