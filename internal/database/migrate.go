package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/dishdash/backend/internal/models"
)

// Migrate creates or updates the schema. On SQLite foreign keys are off per
// connection by default, so they are switched on before migrating.
func Migrate(db *gorm.DB, log logrus.FieldLogger) error {
	if db.Dialector.Name() == "sqlite" {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.WithField("db_driver", db.Dialector.Name()).Info("Database schema migrated")
	return nil
}
