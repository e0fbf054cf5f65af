package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/pixmora/pixmora-backend/internal/config"
	"github.com/pixmora/pixmora-backend/internal/generation"
	"github.com/pixmora/pixmora-backend/internal/repository"
	"github.com/pixmora/pixmora-backend/internal/service"
	"github.com/pixmora/pixmora-backend/pkg/database"
	"github.com/pixmora/pixmora-backend/pkg/email"
	"github.com/pixmora/pixmora-backend/pkg/qrcode"
	"github.com/pixmora/pixmora-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// memStorage keeps uploads in memory so the upload endpoint can run without
// an object store.
type memStorage struct {
	objects map[string][]byte
}

func (m *memStorage) Upload(key string, src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = data
	return nil
}

func (m *memStorage) Delete(key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewCreditAccountRepository(db)
	packageRepo := repository.NewCreditPackageRepository(db)
	purchaseRepo := repository.NewCreditPurchaseRepository(db)
	promptRepo := repository.NewPromptRepository(db)
	sessionRepo := repository.NewEditSessionRepository(db)

	logger := zap.NewNop()
	validator := utils.NewValidator()

	authSvc := service.NewAuthService(userRepo, email.NewEmailService(config.EmailConfig{}), logger)
	creditSvc := service.NewCreditService(accountRepo, userRepo, packageRepo, purchaseRepo, nil, logger)
	promptSvc := service.NewPromptService(promptRepo, userRepo)
	sessionSvc := service.NewEditSessionService(sessionRepo, generation.NewPlaceholder(), &memStorage{}, logger)
	feedSvc := service.NewFeedService(promptRepo, sessionRepo)

	app := fiber.New()
	RegisterRoutes(app, Handlers{
		Auth:        NewAuthHandler(authSvc, validator),
		Prompt:      NewPromptHandler(promptSvc, feedSvc, validator),
		EditSession: NewEditSessionHandler(sessionSvc),
		Image:       NewImageHandler(sessionSvc, feedSvc, qrcode.NewQRService("http://localhost:3000")),
		Credit:      NewCreditHandler(creditSvc, validator, logger),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, path string) []map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	return items
}

func registerUser(t *testing.T, app *fiber.App, username, emailAddr string) map[string]interface{} {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/register", fiber.Map{
		"username": username,
		"email":    emailAddr,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	body := registerUser(t, app, "dana", "dana@example.com")
	assert.NotEmpty(t, body["userId"])
	assert.Equal(t, "dana", body["username"])
	assert.NotEmpty(t, body["token"])

	// Same email again conflicts.
	resp, body := doJSON(t, app, http.MethodPost, "/api/register", fiber.Map{
		"username": "dana2",
		"email":    "dana@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "username or email already taken", body["error"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/login", fiber.Map{
		"username": "dana",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", body["error"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/login", fiber.Map{
		"email":    "Dana@Example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dana", body["username"])
	assert.NotEmpty(t, body["token"])
}

func TestRegister_MissingFields(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/register", fiber.Map{"username": "solo"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestEditSessionWorkflow(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/edit-sessions", fiber.Map{
		"prompt": "watercolor fox",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sessionID := body["id"].(string)
	assert.Equal(t, "created", body["status"])
	assert.Equal(t, "default", body["model"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/edit-sessions/"+sessionID+"/source-images", fiber.Map{
		"urls": []string{"https://example.com/a.png", "https://example.com/b.png"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["sourceImages"], 2)

	resp, body = doJSON(t, app, http.MethodPost, "/api/edit-sessions/"+sessionID+"/generate", fiber.Map{
		"numImages": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	images := body["images"].([]interface{})
	require.Len(t, images, 3)
	for i, raw := range images {
		img := raw.(map[string]interface{})
		assert.Equal(t, float64(i), img["index"])
		assert.NotEmpty(t, img["url"])
		assert.Equal(t, false, img["shared"])
	}

	// Share the first image; a repeat share is a no-op success.
	imageID := images[0].(map[string]interface{})["id"].(string)
	for i := 0; i < 2; i++ {
		resp, body = doJSON(t, app, http.MethodPost, "/api/images/"+imageID+"/share", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, imageID, body["imageId"])
	}
}

func TestCreateSession_BlankPrompt(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/edit-sessions", fiber.Map{"prompt": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Prompt is required", body["error"])
}

func TestGenerate_UnknownSession(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/edit-sessions/6d2c7f64-0000-4000-8000-000000000000/generate", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/edit-sessions/not-a-uuid/generate", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestShareImage_Unknown(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/images/6d2c7f64-0000-4000-8000-000000000000/share", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPromptLifecycle(t *testing.T) {
	app := newTestApp(t)
	user := registerUser(t, app, "maya", "maya@example.com")
	ownerID := user["userId"].(string)

	resp, body := doJSON(t, app, http.MethodPost, "/api/prompts/", fiber.Map{
		"ownerId":  ownerID,
		"title":    "Neon Alley",
		"content":  "a rain-soaked alley lit by neon signs",
		"isPublic": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	promptID := body["promptId"].(string)
	assert.Equal(t, "PENDING", body["status"])
	assert.Equal(t, float64(0), body["timesUsed"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/prompts/"+promptID+"/use", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["timesUsed"])

	resp, body = doJSON(t, app, http.MethodPut, "/api/prompts/"+promptID, fiber.Map{
		"title": "Neon Alley II",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Neon Alley II", body["title"])
	assert.Equal(t, "a rain-soaked alley lit by neon signs", body["content"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/prompts/user/"+ownerID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "maya", body["username"])
	assert.Len(t, body["prompts"], 1)
	assert.Equal(t, float64(1), body["totalCount"])

	resp, body = doJSON(t, app, http.MethodDelete, "/api/prompts/"+promptID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Prompt deleted successfully", body["message"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/prompts/"+promptID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublicPrompts_OnlyApproved(t *testing.T) {
	app := newTestApp(t)
	user := registerUser(t, app, "maya", "maya@example.com")
	ownerID := user["userId"].(string)

	for i := 0; i < 3; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/prompts/", fiber.Map{
			"ownerId":  ownerID,
			"title":    fmt.Sprintf("prompt %d", i),
			"content":  "content",
			"isPublic": true,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Public prompts are PENDING until moderated, so the listing is empty.
	resp, body := doJSON(t, app, http.MethodGet, "/api/prompts/public", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["prompts"], 0)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(20), body["limit"])
}

func TestSharedFeed(t *testing.T) {
	app := newTestApp(t)
	user := registerUser(t, app, "maya", "maya@example.com")

	resp, body := doJSON(t, app, http.MethodPost, "/api/edit-sessions", fiber.Map{
		"prompt": "city at dawn",
		"userId": user["userId"],
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sessionID := body["id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/api/edit-sessions/"+sessionID+"/generate", fiber.Map{"numImages": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, raw := range body["images"].([]interface{}) {
		img := raw.(map[string]interface{})
		resp, _ := doJSON(t, app, http.MethodPost, "/api/images/"+img["id"].(string)+"/share", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	cards := doJSONList(t, app, "/api/images/shared?page=1&limit=10")
	require.Len(t, cards, 2)
	card := cards[0]
	assert.Equal(t, float64(400), card["width"])
	assert.Equal(t, float64(600), card["height"])
	prompt := card["prompt"].(map[string]interface{})
	assert.Equal(t, "city at dawn", prompt["title"])
	author := prompt["author"].(map[string]interface{})
	assert.Equal(t, "maya", author["username"])

	assert.Empty(t, doJSONList(t, app, "/api/images/shared?page=2&limit=10"))
}

func TestCreditsRequireToken(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/credits/balance", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	user := registerUser(t, app, "dana", "dana@example.com")
	token := user["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/credits/balance", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var balance map[string]interface{}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&balance))
	assert.Equal(t, user["userId"], balance["userId"])
	assert.Equal(t, float64(0), balance["balance"])
}

func TestDebit_AmountRequired(t *testing.T) {
	app := newTestApp(t)
	user := registerUser(t, app, "dana", "dana@example.com")
	token := user["token"].(string)

	req := httptest.NewRequest(http.MethodPost, "/api/credits/debit", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "amount is required", body["error"])
}

func TestShareQR(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/edit-sessions", fiber.Map{"prompt": "qr test"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sessionID := body["id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/api/edit-sessions/"+sessionID+"/generate", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	imageID := body["images"].([]interface{})[0].(map[string]interface{})["id"].(string)

	// Not shared yet.
	req := httptest.NewRequest(http.MethodGet, "/api/images/"+imageID+"/qr", nil)
	qrResp, err := app.Test(req, -1)
	require.NoError(t, err)
	qrResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, qrResp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/images/"+imageID+"/share", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/images/"+imageID+"/qr", nil)
	qrResp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer qrResp.Body.Close()
	assert.Equal(t, http.StatusOK, qrResp.StatusCode)
	assert.Equal(t, "image/png", qrResp.Header.Get("Content-Type"))
	png, err := io.ReadAll(qrResp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
