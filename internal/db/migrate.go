package db

import (
	"github.com/jmpark/company-catalog-backend/internal/app/model"
	"github.com/jmpark/company-catalog-backend/pkg/logger"
)

func catalogModels() []interface{} {
	return []interface{}{
		&model.Company{},
		&model.CompanyName{},
		&model.Tag{},
		&model.TagLocalization{},
		&model.CompanyTag{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := catalogModels()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// DropTables drops every catalog table. Used by the DROP_TABLES_AT_START
// bootstrap flag before repopulating from a snapshot.
func DropTables() error {
	logger.Warn("Dropping all catalog tables")

	models := catalogModels()
	// Join table first so parent drops never hit dangling FK constraints
	for i := len(models) - 1; i >= 0; i-- {
		if err := DB.Migrator().DropTable(models[i]); err != nil {
			logger.Error("Failed to drop table", err)
			return err
		}
	}

	logger.Info("All catalog tables dropped")
	return nil
}
