package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/internal/service"
	"github.com/pixmora/pixmora-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "username, email, and password are required")
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}
