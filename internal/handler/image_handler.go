package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/service"
	"github.com/pixmora/pixmora-backend/pkg/qrcode"
)

type ImageHandler struct {
	sessionService *service.EditSessionService
	feedService    *service.FeedService
	qrService      *qrcode.QRService
}

func NewImageHandler(sessionService *service.EditSessionService, feedService *service.FeedService, qrService *qrcode.QRService) *ImageHandler {
	return &ImageHandler{
		sessionService: sessionService,
		feedService:    feedService,
		qrService:      qrService,
	}
}

func (h *ImageHandler) GetImages(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	cards, err := h.feedService.ListPromptCards(page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(cards)
}

func (h *ImageHandler) GetSharedImages(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	cards, err := h.feedService.ListFeed(page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(cards)
}

func (h *ImageHandler) ShareImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid image ID format")
	}

	if err := h.sessionService.ShareImage(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.ShareImageResponse{Success: true, ImageID: id.String()})
}

// GetShareQR renders the share link of an already-shared image as a PNG QR
// code.
func (h *ImageHandler) GetShareQR(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid image ID format")
	}

	image, err := h.sessionService.GetSharedImage(id)
	if err != nil {
		return respondError(c, err)
	}

	size := c.QueryInt("size", 256)
	png, err := h.qrService.GenerateShareQR(image.ID.String(), size)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
