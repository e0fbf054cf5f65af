package handler

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/service"
	"github.com/pixmora/pixmora-backend/pkg/utils"
	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"
)

type CreditHandler struct {
	creditService *service.CreditService
	validator     *utils.Validator
	logger        *zap.Logger
}

func NewCreditHandler(creditService *service.CreditService, validator *utils.Validator, logger *zap.Logger) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
		validator:     validator,
		logger:        logger,
	}
}

func (h *CreditHandler) GetBalance(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.NewErrorResponse("User not authenticated"))
	}

	balance, err := h.creditService.GetBalance(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.BalanceResponse{UserID: userID.String(), Balance: balance})
}

func (h *CreditHandler) Debit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.NewErrorResponse("User not authenticated"))
	}

	var req models.DebitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "amount is required")
	}

	if err := h.creditService.Debit(userID, req.Amount); err != nil {
		return respondError(c, err)
	}

	balance, err := h.creditService.GetBalance(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.BalanceResponse{UserID: userID.String(), Balance: balance})
}

func (h *CreditHandler) GetPackages(c *fiber.Ctx) error {
	packages, err := h.creditService.GetPackages()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(packages)
}

func (h *CreditHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.NewErrorResponse("User not authenticated"))
	}

	packageID, err := uuid.Parse(c.Params("packageId"))
	if err != nil {
		return badRequest(c, "Invalid package ID format")
	}

	session, err := h.creditService.CreateCheckoutSession(userID, packageID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(session)
}

func (h *CreditHandler) GetPurchaseHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.NewErrorResponse("User not authenticated"))
	}

	purchases, err := h.creditService.GetPurchaseHistory(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(purchases)
}

func (h *CreditHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		h.logger.Warn("stripe webhook rejected", zap.Error(err))
		return badRequest(c, "Invalid webhook payload")
	}

	if err := h.creditService.HandleStripeWebhook(&event); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
