package database

import (
	"fmt"

	"github.com/pixmora/pixmora-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func New(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the services branch on.
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.CreditAccount{},
		&models.CreditPackage{},
		&models.CreditPurchase{},
		&models.Prompt{},
		&models.EditSession{},
		&models.SourceImage{},
		&models.GeneratedImage{},
	)
}
