package repository

import (
	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/models"
	"gorm.io/gorm"
)

type CreditPurchaseRepository struct {
	db *gorm.DB
}

func NewCreditPurchaseRepository(db *gorm.DB) *CreditPurchaseRepository {
	return &CreditPurchaseRepository{db: db}
}

func (r *CreditPurchaseRepository) Create(purchase *models.CreditPurchase) error {
	return r.db.Create(purchase).Error
}

func (r *CreditPurchaseRepository) GetBySessionID(sessionID string) (*models.CreditPurchase, error) {
	var purchase models.CreditPurchase
	err := r.db.Where("stripe_session_id = ?", sessionID).First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *CreditPurchaseRepository) Update(purchase *models.CreditPurchase) error {
	return r.db.Save(purchase).Error
}

// Complete marks the purchase completed and credits the buyer's account in
// one transaction.
func (r *CreditPurchaseRepository) Complete(purchase *models.CreditPurchase) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		purchase.Status = models.PurchaseStatusCompleted
		if err := tx.Save(purchase).Error; err != nil {
			return err
		}
		return tx.Model(&models.CreditAccount{}).
			Where("user_id = ?", purchase.UserID).
			UpdateColumn("balance", gorm.Expr("balance + ?", purchase.Credits)).Error
	})
}

func (r *CreditPurchaseRepository) GetUserPurchaseHistory(userID uuid.UUID) ([]models.CreditPurchase, error) {
	var purchases []models.CreditPurchase
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}
