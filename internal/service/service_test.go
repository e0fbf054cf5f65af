package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/pixmora/pixmora-backend/internal/config"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/repository"
	"github.com/pixmora/pixmora-backend/pkg/bcrypt"
	"github.com/pixmora/pixmora-backend/pkg/database"
	"github.com/pixmora/pixmora-backend/pkg/email"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory database with the full schema. A single
// connection keeps every query on the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewUserRepository(db),
		email.NewEmailService(config.EmailConfig{}),
		zap.NewNop(),
	)
}

// createUser inserts a user with a credit account, the same shape
// registration produces.
func createUser(t *testing.T, db *gorm.DB, username, emailAddr string) *models.User {
	t.Helper()

	hash, err := bcrypt.HashPassword("hunter22")
	require.NoError(t, err)

	user := &models.User{Username: username, Email: emailAddr, PasswordHash: hash}
	_, err = repository.NewUserRepository(db).CreateWithAccount(user)
	require.NoError(t, err)
	return user
}
