package repository

import (
	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/models"
	"gorm.io/gorm"
)

type CreditPackageRepository struct {
	db *gorm.DB
}

func NewCreditPackageRepository(db *gorm.DB) *CreditPackageRepository {
	return &CreditPackageRepository{db: db}
}

func (r *CreditPackageRepository) GetByID(id uuid.UUID) (*models.CreditPackage, error) {
	var creditPackage models.CreditPackage
	err := r.db.First(&creditPackage, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &creditPackage, nil
}

func (r *CreditPackageRepository) GetAll() ([]models.CreditPackage, error) {
	var packages []models.CreditPackage
	err := r.db.Where("is_active = ?", true).Find(&packages).Error
	return packages, err
}
