package service

import (
	"testing"

	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/repository"
	"github.com/pixmora/pixmora-backend/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFeedService(db *gorm.DB) *FeedService {
	return NewFeedService(repository.NewPromptRepository(db), repository.NewEditSessionRepository(db))
}

// shareImages creates a session owned by user and shares n generated images.
func shareImages(t *testing.T, db *gorm.DB, user *models.User, n int) {
	t.Helper()
	svc := newSessionService(db)

	session, err := svc.Create("shared cat", "", &user.ID)
	require.NoError(t, err)
	images, err := svc.Generate(session.ID, n)
	require.NoError(t, err)
	for _, img := range images {
		require.NoError(t, svc.ShareImage(img.ID))
	}
}

func TestListFeed_FirstPagePrependsCurated(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, database.Seed(db))
	svc := newFeedService(db)

	user := createUser(t, db, "erin", "erin@example.com")
	shareImages(t, db, user, 12)

	page1, err := svc.ListFeed(1, 10)
	require.NoError(t, err)
	// 5 curated prompts + 10 shared images.
	assert.Len(t, page1, 15)
	for _, card := range page1[:5] {
		assert.NotEmpty(t, card.Prompt.Title)
		assert.NotEmpty(t, card.Prompt.Author.Username)
	}
	assert.Equal(t, models.CardWidth, page1[0].Width)
	assert.Equal(t, models.CardHeight, page1[0].Height)

	page2, err := svc.ListFeed(2, 10)
	require.NoError(t, err)
	// Later pages carry shared images only.
	assert.Len(t, page2, 2)
	for _, card := range page2 {
		assert.Equal(t, "erin", card.Prompt.Author.Username)
		assert.Equal(t, "shared cat", card.Prompt.Title)
	}
}

func TestListFeed_ExcludesAnonymousSessions(t *testing.T) {
	db := newTestDB(t)
	svc := newFeedService(db)
	sessionSvc := newSessionService(db)

	session, err := sessionSvc.Create("orphan", "", nil)
	require.NoError(t, err)
	images, err := sessionSvc.Generate(session.ID, 1)
	require.NoError(t, err)
	require.NoError(t, sessionSvc.ShareImage(images[0].ID))

	cards, err := svc.ListFeed(1, 10)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestListFeed_UnsharedImagesHidden(t *testing.T) {
	db := newTestDB(t)
	svc := newFeedService(db)
	user := createUser(t, db, "erin", "erin@example.com")

	sessionSvc := newSessionService(db)
	session, err := sessionSvc.Create("hidden", "", &user.ID)
	require.NoError(t, err)
	_, err = sessionSvc.Generate(session.ID, 2)
	require.NoError(t, err)

	cards, err := svc.ListFeed(1, 10)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestListPromptCards_Paginates(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, database.Seed(db))
	svc := newFeedService(db)

	cards, err := svc.ListPromptCards(1, 3)
	require.NoError(t, err)
	assert.Len(t, cards, 3)

	cards, err = svc.ListPromptCards(2, 3)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestListUserSharedImages(t *testing.T) {
	db := newTestDB(t)
	svc := newFeedService(db)

	alice := createUser(t, db, "alice", "alice@example.com")
	bob := createUser(t, db, "bob", "bob@example.com")
	shareImages(t, db, alice, 2)
	shareImages(t, db, bob, 1)

	cards, err := svc.ListUserSharedImages(alice.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	for _, card := range cards {
		assert.Equal(t, "alice", card.Prompt.Author.Username)
	}
}
