package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pixmora/pixmora-backend/internal/middleware"
)

type Handlers struct {
	Auth        *AuthHandler
	Prompt      *PromptHandler
	EditSession *EditSessionHandler
	Image       *ImageHandler
	Credit      *CreditHandler
}

// RegisterRoutes mounts every endpoint under /api.
func RegisterRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api")

	// Auth
	api.Post("/register", h.Auth.Register)
	api.Post("/login", h.Auth.Login)

	// Edit sessions
	api.Post("/edit-sessions", h.EditSession.CreateSession)
	api.Patch("/edit-sessions/:id", h.EditSession.UpdateSession)
	api.Post("/edit-sessions/:id/source-images", h.EditSession.AddSourceImages)
	api.Post("/edit-sessions/:id/source-images/upload", h.EditSession.UploadSourceImages)
	api.Post("/edit-sessions/:id/generate", h.EditSession.Generate)

	// Gallery
	api.Get("/images", h.Image.GetImages)
	api.Get("/images/shared", h.Image.GetSharedImages)
	api.Post("/images/:id/share", h.Image.ShareImage)
	api.Get("/images/:id/qr", h.Image.GetShareQR)

	// Prompts
	prompts := api.Group("/prompts")
	prompts.Get("/public", h.Prompt.GetPublicPrompts)
	prompts.Get("/user/:userId", h.Prompt.GetUserPrompts)
	prompts.Get("/user/:userId/images/shared", h.Prompt.GetUserSharedImages)
	prompts.Post("/", h.Prompt.CreatePrompt)
	prompts.Put("/:id", h.Prompt.UpdatePrompt)
	prompts.Delete("/:id", h.Prompt.DeletePrompt)
	prompts.Post("/:id/use", h.Prompt.UsePrompt)
	prompts.Post("/:id/like", h.Prompt.LikePrompt)

	// Credits; the Stripe webhook stays public, everything else needs a token.
	credits := api.Group("/credits")
	credits.Post("/webhook", h.Credit.HandleStripeWebhook)
	credits.Get("/packages", h.Credit.GetPackages)
	credits.Use(middleware.AuthMiddleware())
	credits.Get("/balance", h.Credit.GetBalance)
	credits.Post("/debit", h.Credit.Debit)
	credits.Post("/checkout/:packageId", h.Credit.CreateCheckoutSession)
	credits.Get("/history", h.Credit.GetPurchaseHistory)
}
