package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/apperr"
	"github.com/pixmora/pixmora-backend/internal/generation"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/repository"
	"github.com/pixmora/pixmora-backend/pkg/storage"
	"github.com/pixmora/pixmora-backend/pkg/utils"
	"go.uber.org/zap"
)

const DefaultModel = "default"

type EditSessionService struct {
	sessionRepo *repository.EditSessionRepository
	generator   generation.Generator
	storage     storage.Storage
	logger      *zap.Logger
}

func NewEditSessionService(
	sessionRepo *repository.EditSessionRepository,
	generator generation.Generator,
	store storage.Storage,
	logger *zap.Logger,
) *EditSessionService {
	return &EditSessionService{
		sessionRepo: sessionRepo,
		generator:   generator,
		storage:     store,
		logger:      logger,
	}
}

func (s *EditSessionService) Create(prompt, model string, userID *uuid.UUID) (*models.EditSession, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, apperr.Validation("Prompt is required")
	}
	if model == "" {
		model = DefaultModel
	}

	session := &models.EditSession{
		Prompt: prompt,
		Model:  model,
		UserID: userID,
		Status: models.SessionStatusCreated,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	session.SourceImages = []models.SourceImage{}
	session.GeneratedImages = []models.GeneratedImage{}
	return session, nil
}

func (s *EditSessionService) Get(id uuid.UUID) (*models.EditSession, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("Session not found")
	}
	return session, nil
}

func (s *EditSessionService) Update(id uuid.UUID, req models.UpdateSessionRequest) (*models.EditSession, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("Session not found")
	}

	if req.Prompt != nil {
		prompt := strings.TrimSpace(*req.Prompt)
		if prompt == "" {
			return nil, apperr.Validation("Prompt must not be blank")
		}
		session.Prompt = prompt
	}
	if req.Model != nil && *req.Model != "" {
		session.Model = *req.Model
	}

	if err := s.sessionRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *EditSessionService) AddSourceImages(id uuid.UUID, urls []string) ([]models.SourceImage, error) {
	if _, err := s.sessionRepo.GetByID(id); err != nil {
		return nil, apperr.NotFound("Session not found")
	}
	return s.sessionRepo.AddSourceImages(id, urls)
}

// UploadSourceImages stores the uploaded files in the object store and
// registers the resulting URLs as source images.
func (s *EditSessionService) UploadSourceImages(id uuid.UUID, files []*multipart.FileHeader) ([]models.SourceImage, error) {
	if _, err := s.sessionRepo.GetByID(id); err != nil {
		return nil, apperr.NotFound("Session not found")
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, err
		}

		key := fmt.Sprintf("sessions/%s/%s%s", id, utils.GenerateRandomString(12), filepath.Ext(fh.Filename))
		err = s.storage.Upload(key, src)
		src.Close()
		if err != nil {
			s.logger.Error("source image upload failed",
				zap.String("session_id", id.String()), zap.Error(err))
			return nil, err
		}
		urls = append(urls, s.storage.PublicURL(key))
	}

	return s.sessionRepo.AddSourceImages(id, urls)
}

// Generate runs the created/generating/completed transition. Indexes stay
// contiguous and monotonic across repeated calls on the same session.
func (s *EditSessionService) Generate(id uuid.UUID, numImages int) ([]models.GeneratedImage, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("Session not found")
	}

	if numImages < 1 {
		numImages = 1
	}

	urls, err := s.generator.Generate(session.Prompt, session.Model, numImages)
	if err != nil {
		return nil, err
	}

	images, err := s.sessionRepo.CreateGenerated(id, urls)
	if err != nil {
		return nil, err
	}

	s.logger.Info("images generated",
		zap.String("session_id", id.String()),
		zap.Int("count", len(images)))
	return images, nil
}

// ShareImage marks a generated image as publicly visible. Re-sharing is a
// no-op success.
func (s *EditSessionService) ShareImage(id uuid.UUID) error {
	rows, err := s.sessionRepo.ShareImage(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("Image not found")
	}
	return nil
}

// GetSharedImage returns the image only if it has been shared.
func (s *EditSessionService) GetSharedImage(id uuid.UUID) (*models.GeneratedImage, error) {
	image, err := s.sessionRepo.GetImageByID(id)
	if err != nil || !image.Shared {
		return nil, apperr.NotFound("Image not found")
	}
	return image, nil
}
