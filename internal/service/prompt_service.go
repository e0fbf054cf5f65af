package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/apperr"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/repository"
	"github.com/pixmora/pixmora-backend/pkg/utils"
)

type PromptService struct {
	promptRepo *repository.PromptRepository
	userRepo   *repository.UserRepository
}

func NewPromptService(promptRepo *repository.PromptRepository, userRepo *repository.UserRepository) *PromptService {
	return &PromptService{
		promptRepo: promptRepo,
		userRepo:   userRepo,
	}
}

func (s *PromptService) Create(ownerID uuid.UUID, req models.CreatePromptRequest) (*models.Prompt, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperr.Validation("ownerId, title, and content are required")
	}

	if _, err := s.userRepo.GetByID(ownerID); err != nil {
		return nil, apperr.NotFound("User not found")
	}

	// Private prompts are auto-approved; public ones wait for moderation.
	status := models.PromptStatusApproved
	if req.IsPublic {
		status = models.PromptStatusPending
	}

	prompt := &models.Prompt{
		OwnerID:         ownerID,
		Title:           title,
		Content:         content,
		PreviewImageURL: strings.TrimSpace(req.PreviewImageURL),
		IsPublic:        req.IsPublic,
		Status:          status,
	}
	if err := s.promptRepo.Create(prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

func (s *PromptService) Update(id uuid.UUID, req models.UpdatePromptRequest) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(id)
	if err != nil {
		return nil, apperr.NotFound("Prompt not found")
	}

	if req.Title != nil {
		prompt.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		prompt.Content = strings.TrimSpace(*req.Content)
	}
	if req.PreviewImageURL != nil {
		prompt.PreviewImageURL = strings.TrimSpace(*req.PreviewImageURL)
	}
	if req.IsPublic != nil {
		prompt.IsPublic = *req.IsPublic
		// Publishing requires moderation until the prompt is approved.
		if *req.IsPublic && prompt.Status != models.PromptStatusApproved {
			prompt.Status = models.PromptStatusPending
		}
	}

	if err := s.promptRepo.Update(prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

func (s *PromptService) Delete(id uuid.UUID) error {
	rows, err := s.promptRepo.Delete(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("Prompt not found")
	}
	return nil
}

func (s *PromptService) IncrementUsage(id uuid.UUID) (*models.Prompt, error) {
	rows, err := s.promptRepo.IncrementTimesUsed(id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperr.NotFound("Prompt not found")
	}
	return s.promptRepo.GetByID(id)
}

func (s *PromptService) IncrementLikes(id uuid.UUID) (*models.Prompt, error) {
	rows, err := s.promptRepo.IncrementLikes(id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperr.NotFound("Prompt not found")
	}
	return s.promptRepo.GetByID(id)
}

func (s *PromptService) ListByUser(userID uuid.UUID, page, limit int) (*models.UserPromptsResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apperr.NotFound("User not found")
	}

	page, limit = utils.ClampPagination(page, limit)
	prompts, err := s.promptRepo.ListByOwner(userID, utils.PageOffset(page, limit), limit)
	if err != nil {
		return nil, err
	}
	total, err := s.promptRepo.CountByOwner(userID)
	if err != nil {
		return nil, err
	}

	resp := &models.UserPromptsResponse{
		UserID:     userID.String(),
		Username:   user.Username,
		Prompts:    make([]models.PromptResponse, 0, len(prompts)),
		TotalCount: total,
	}
	for i := range prompts {
		resp.Prompts = append(resp.Prompts, models.NewPromptResponse(&prompts[i], false))
	}
	return resp, nil
}

func (s *PromptService) ListPublicApproved(page, limit int) (*models.PublicPromptsResponse, error) {
	page, limit = utils.ClampPagination(page, limit)
	prompts, err := s.promptRepo.ListPublicApproved(utils.PageOffset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	resp := &models.PublicPromptsResponse{
		Prompts: make([]models.PromptResponse, 0, len(prompts)),
		Page:    page,
		Limit:   limit,
	}
	for i := range prompts {
		resp.Prompts = append(resp.Prompts, models.NewPromptResponse(&prompts[i], true))
	}
	return resp, nil
}

// Approve and Reject are the moderation hooks. There is no moderation
// endpoint yet; they exist for the admin surface to call.
func (s *PromptService) Approve(id uuid.UUID) error {
	return s.setStatus(id, models.PromptStatusApproved)
}

func (s *PromptService) Reject(id uuid.UUID) error {
	return s.setStatus(id, models.PromptStatusRejected)
}

func (s *PromptService) setStatus(id uuid.UUID, status models.PromptStatus) error {
	prompt, err := s.promptRepo.GetByID(id)
	if err != nil {
		return apperr.NotFound("Prompt not found")
	}
	prompt.Status = status
	return s.promptRepo.Update(prompt)
}
