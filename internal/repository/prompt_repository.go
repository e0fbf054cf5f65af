package repository

import (
	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/models"
	"gorm.io/gorm"
)

type PromptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

func (r *PromptRepository) Create(prompt *models.Prompt) error {
	return r.db.Create(prompt).Error
}

func (r *PromptRepository) GetByID(id uuid.UUID) (*models.Prompt, error) {
	var prompt models.Prompt
	err := r.db.First(&prompt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (r *PromptRepository) Update(prompt *models.Prompt) error {
	return r.db.Save(prompt).Error
}

func (r *PromptRepository) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&models.Prompt{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// IncrementTimesUsed bumps the counter with a single atomic UPDATE so
// concurrent uses cannot lose increments.
func (r *PromptRepository) IncrementTimesUsed(id uuid.UUID) (int64, error) {
	result := r.db.Model(&models.Prompt{}).
		Where("id = ?", id).
		UpdateColumn("times_used", gorm.Expr("times_used + 1"))
	return result.RowsAffected, result.Error
}

func (r *PromptRepository) IncrementLikes(id uuid.UUID) (int64, error) {
	result := r.db.Model(&models.Prompt{}).
		Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + 1"))
	return result.RowsAffected, result.Error
}

func (r *PromptRepository) ListByOwner(ownerID uuid.UUID, offset, limit int) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&prompts).Error
	return prompts, err
}

func (r *PromptRepository) CountByOwner(ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Prompt{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *PromptRepository) ListPublicApproved(offset, limit int) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.Preload("Owner").
		Where("is_public = ? AND status = ?", true, models.PromptStatusApproved).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&prompts).Error
	return prompts, err
}

// ListAll returns prompts of every visibility with their owners, newest
// first. Feeds the plain /images listing.
func (r *PromptRepository) ListAll(offset, limit int) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.Preload("Owner").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&prompts).Error
	return prompts, err
}

// ListCurated returns the newest approved public prompts for the first feed
// page.
func (r *PromptRepository) ListCurated(limit int) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.Preload("Owner").
		Where("is_public = ? AND status = ?", true, models.PromptStatusApproved).
		Order("created_at DESC").
		Limit(limit).
		Find(&prompts).Error
	return prompts, err
}
