package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/service"
	"github.com/pixmora/pixmora-backend/pkg/utils"
)

type PromptHandler struct {
	promptService *service.PromptService
	feedService   *service.FeedService
	validator     *utils.Validator
}

func NewPromptHandler(promptService *service.PromptService, feedService *service.FeedService, validator *utils.Validator) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
		feedService:   feedService,
		validator:     validator,
	}
}

func (h *PromptHandler) CreatePrompt(c *fiber.Ctx) error {
	var req models.CreatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "ownerId, title, and content are required")
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return badRequest(c, "Invalid owner ID format")
	}

	prompt, err := h.promptService.Create(ownerID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewPromptResponse(prompt, false))
}

func (h *PromptHandler) UpdatePrompt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid prompt ID format")
	}

	var req models.UpdatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	prompt, err := h.promptService.Update(id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewPromptResponse(prompt, false))
}

func (h *PromptHandler) DeletePrompt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid prompt ID format")
	}

	if err := h.promptService.Delete(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.MessageResponse{Message: "Prompt deleted successfully"})
}

func (h *PromptHandler) UsePrompt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid prompt ID format")
	}

	prompt, err := h.promptService.IncrementUsage(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"promptId":  prompt.ID.String(),
		"timesUsed": prompt.TimesUsed,
	})
}

func (h *PromptHandler) LikePrompt(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid prompt ID format")
	}

	prompt, err := h.promptService.IncrementLikes(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"promptId":   prompt.ID.String(),
		"likesCount": prompt.LikesCount,
	})
}

func (h *PromptHandler) GetUserPrompts(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID format")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	resp, err := h.promptService.ListByUser(userID, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}

func (h *PromptHandler) GetPublicPrompts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	resp, err := h.promptService.ListPublicApproved(page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}

func (h *PromptHandler) GetUserSharedImages(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID format")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	cards, err := h.feedService.ListUserSharedImages(userID, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(cards)
}
