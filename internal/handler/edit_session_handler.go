package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/service"
)

type EditSessionHandler struct {
	sessionService *service.EditSessionService
}

func NewEditSessionHandler(sessionService *service.EditSessionService) *EditSessionHandler {
	return &EditSessionHandler{
		sessionService: sessionService,
	}
}

func (h *EditSessionHandler) CreateSession(c *fiber.Ctx) error {
	var req models.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	model := req.Model
	if model == "" {
		model = req.ModelName
	}

	var userID *uuid.UUID
	if req.UserID != "" {
		id, err := uuid.Parse(req.UserID)
		if err != nil {
			return badRequest(c, "Invalid user ID format")
		}
		userID = &id
	}

	session, err := h.sessionService.Create(req.Prompt, model, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewEditSessionResponse(session))
}

func (h *EditSessionHandler) UpdateSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid session ID format")
	}

	var req models.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.sessionService.Update(id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.NewEditSessionResponse(session))
}

func (h *EditSessionHandler) AddSourceImages(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid session ID format")
	}

	var req models.AddSourceImagesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	images, err := h.sessionService.AddSourceImages(id, req.URLs)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]models.SourceImageResponse, 0, len(images))
	for i := range images {
		resp = append(resp, models.NewSourceImageResponse(&images[i]))
	}
	return c.JSON(fiber.Map{"sourceImages": resp})
}

func (h *EditSessionHandler) UploadSourceImages(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid session ID format")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Invalid multipart form")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return badRequest(c, "No images provided")
	}

	images, err := h.sessionService.UploadSourceImages(id, files)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]models.SourceImageResponse, 0, len(images))
	for i := range images {
		resp = append(resp, models.NewSourceImageResponse(&images[i]))
	}
	return c.JSON(fiber.Map{"sourceImages": resp})
}

func (h *EditSessionHandler) Generate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid session ID format")
	}

	req := models.GenerateRequest{NumImages: 1}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	images, err := h.sessionService.Generate(id, req.NumImages)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]models.GeneratedImageResponse, 0, len(images))
	for i := range images {
		resp = append(resp, models.NewGeneratedImageResponse(&images[i]))
	}
	return c.JSON(fiber.Map{"images": resp})
}
