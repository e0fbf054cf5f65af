package repository

import (
	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/models"
	"gorm.io/gorm"
)

type CreditAccountRepository struct {
	db *gorm.DB
}

func NewCreditAccountRepository(db *gorm.DB) *CreditAccountRepository {
	return &CreditAccountRepository{db: db}
}

func (r *CreditAccountRepository) Create(account *models.CreditAccount) error {
	return r.db.Create(account).Error
}

func (r *CreditAccountRepository) GetByUserID(userID uuid.UUID) (*models.CreditAccount, error) {
	var account models.CreditAccount
	err := r.db.Where("user_id = ?", userID).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Credit adds amount to the balance with a single atomic UPDATE. Returns the
// number of rows touched so callers can detect a missing account.
func (r *CreditAccountRepository) Credit(userID uuid.UUID, amount int) (int64, error) {
	result := r.db.Model(&models.CreditAccount{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	return result.RowsAffected, result.Error
}

// Debit subtracts amount only when the balance covers it; the balance guard
// lives in the WHERE clause so concurrent debits cannot overdraw.
func (r *CreditAccountRepository) Debit(userID uuid.UUID, amount int) (int64, error) {
	result := r.db.Model(&models.CreditAccount{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	return result.RowsAffected, result.Error
}
