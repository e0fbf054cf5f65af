package service

import (
	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/repository"
	"github.com/pixmora/pixmora-backend/pkg/utils"
)

// Page 1 of the shared feed opens with up to this many curated prompts.
const curatedCardCount = 5

type FeedService struct {
	promptRepo  *repository.PromptRepository
	sessionRepo *repository.EditSessionRepository
}

func NewFeedService(promptRepo *repository.PromptRepository, sessionRepo *repository.EditSessionRepository) *FeedService {
	return &FeedService{
		promptRepo:  promptRepo,
		sessionRepo: sessionRepo,
	}
}

// ListPromptCards serves /images: every prompt as an image card, paginated.
func (s *FeedService) ListPromptCards(page, limit int) ([]models.ImageCard, error) {
	page, limit = utils.ClampPagination(page, limit)
	prompts, err := s.promptRepo.ListAll(utils.PageOffset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	cards := make([]models.ImageCard, 0, len(prompts))
	for i := range prompts {
		cards = append(cards, models.PromptCard(&prompts[i]))
	}
	return cards, nil
}

// ListFeed serves /images/shared. The first page prepends the curated
// prompts ahead of the shared-image slice; later pages are shared images
// only. The two sources paginate independently, so no combined total exists.
func (s *FeedService) ListFeed(page, limit int) ([]models.ImageCard, error) {
	page, limit = utils.ClampPagination(page, limit)

	cards := make([]models.ImageCard, 0, curatedCardCount+limit)
	if page == 1 {
		curated, err := s.promptRepo.ListCurated(curatedCardCount)
		if err != nil {
			return nil, err
		}
		for i := range curated {
			cards = append(cards, models.PromptCard(&curated[i]))
		}
	}

	shared, err := s.sessionRepo.ListShared(utils.PageOffset(page, limit), limit)
	if err != nil {
		return nil, err
	}
	for i := range shared {
		cards = append(cards, models.SharedImageCard(&shared[i]))
	}
	return cards, nil
}

// ListUserSharedImages returns one user's shared images as feed cards.
func (s *FeedService) ListUserSharedImages(userID uuid.UUID, page, limit int) ([]models.ImageCard, error) {
	page, limit = utils.ClampPagination(page, limit)
	shared, err := s.sessionRepo.ListSharedByUser(userID, utils.PageOffset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	cards := make([]models.ImageCard, 0, len(shared))
	for i := range shared {
		cards = append(cards, models.SharedImageCard(&shared[i]))
	}
	return cards, nil
}
