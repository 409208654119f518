package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/mytheresa/orders-report/models"
)

// RunMigrations creates every missing table of the store. Existing tables are
// left as they are, so running it twice is harmless.
func RunMigrations(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	migrations := models.All()

	for i, model := range migrations {
		logger.Info(fmt.Sprintf("Running migration %d/%d", i+1, len(migrations)))
		if err := db.WithContext(ctx).AutoMigrate(model); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	logger.Info("All migrations completed successfully")
	return nil
}
