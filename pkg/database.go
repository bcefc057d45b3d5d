package pkg

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SEACET-CSE/edugroup-service/internal/config"
	"github.com/SEACET-CSE/edugroup-service/internal/models"
)

// InitDatabase opens the Postgres connection, migrates the schema and seeds
// the fixed topic catalog on first run.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.PreferenceOption{},
		&models.Group{},
		&models.SectionUpload{},
		&models.ChatMessage{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := seedOptions(db); err != nil {
		return nil, fmt.Errorf("failed to seed options: %w", err)
	}

	return db, nil
}

// seedOptions inserts the 12 fixed topics if the catalog is empty. Titles
// are edited through the API afterwards, so existing rows are left alone.
func seedOptions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PreferenceOption{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	options := make([]models.PreferenceOption, 0, models.OptionCount)
	for i := 1; i <= models.OptionCount; i++ {
		options = append(options, models.PreferenceOption{
			ID:          i,
			Title:       fmt.Sprintf("Research Topic %d", i),
			Description: fmt.Sprintf("Focus area covering specific aspects of topic %d.", i),
		})
	}

	return db.Create(&options).Error
}
