package repository

import (
	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/models"
	"gorm.io/gorm"
)

type EditSessionRepository struct {
	db *gorm.DB
}

func NewEditSessionRepository(db *gorm.DB) *EditSessionRepository {
	return &EditSessionRepository{db: db}
}

func (r *EditSessionRepository) Create(session *models.EditSession) error {
	return r.db.Create(session).Error
}

func (r *EditSessionRepository) GetByID(id uuid.UUID) (*models.EditSession, error) {
	var session models.EditSession
	err := r.db.Preload("SourceImages").Preload("GeneratedImages").
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *EditSessionRepository) Update(session *models.EditSession) error {
	return r.db.Save(session).Error
}

func (r *EditSessionRepository) AddSourceImages(sessionID uuid.UUID, urls []string) ([]models.SourceImage, error) {
	images := make([]models.SourceImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, models.SourceImage{SessionID: sessionID, URL: url})
	}
	if len(images) == 0 {
		return images, nil
	}
	if err := r.db.Create(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// CreateGenerated runs the whole generate transition in one transaction:
// status=generating, one row per URL with contiguous positions continuing
// from the existing count, then status=completed. A failure anywhere rolls
// the session back to its previous state.
func (r *EditSessionRepository) CreateGenerated(sessionID uuid.UUID, urls []string) ([]models.GeneratedImage, error) {
	var images []models.GeneratedImage
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.EditSession{}).
			Where("id = ?", sessionID).
			Update("status", models.SessionStatusGenerating).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.GeneratedImage{}).
			Where("session_id = ?", sessionID).
			Count(&existing).Error; err != nil {
			return err
		}

		images = make([]models.GeneratedImage, 0, len(urls))
		for i, url := range urls {
			images = append(images, models.GeneratedImage{
				SessionID: sessionID,
				URL:       url,
				Position:  int(existing) + i,
			})
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.EditSession{}).
			Where("id = ?", sessionID).
			Update("status", models.SessionStatusCompleted).Error
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *EditSessionRepository) GetImageByID(id uuid.UUID) (*models.GeneratedImage, error) {
	var image models.GeneratedImage
	err := r.db.First(&image, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ShareImage marks the image shared. Sharing an already-shared image still
// matches the row, so the call stays idempotent.
func (r *EditSessionRepository) ShareImage(id uuid.UUID) (int64, error) {
	result := r.db.Model(&models.GeneratedImage{}).
		Where("id = ?", id).
		Update("shared", true)
	return result.RowsAffected, result.Error
}

// ListShared returns shared images with their session and author, newest
// first. Images from anonymous sessions are excluded: the feed card needs an
// author.
func (r *EditSessionRepository) ListShared(offset, limit int) ([]models.GeneratedImage, error) {
	var images []models.GeneratedImage
	err := r.db.Preload("Session").Preload("Session.User").
		Joins("JOIN edit_sessions ON edit_sessions.id = generated_images.session_id").
		Joins("JOIN users ON users.id = edit_sessions.user_id").
		Where("generated_images.shared = ?", true).
		Order("generated_images.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&images).Error
	return images, err
}

func (r *EditSessionRepository) ListSharedByUser(userID uuid.UUID, offset, limit int) ([]models.GeneratedImage, error) {
	var images []models.GeneratedImage
	err := r.db.Preload("Session").Preload("Session.User").
		Joins("JOIN edit_sessions ON edit_sessions.id = generated_images.session_id").
		Where("generated_images.shared = ? AND edit_sessions.user_id = ?", true, userID).
		Order("generated_images.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&images).Error
	return images, err
}
