package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/tubeshelf/tubeshelf-go/internal/middleware"
	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/repository"
	"github.com/tubeshelf/tubeshelf-go/internal/service"
	"github.com/tubeshelf/tubeshelf-go/internal/validate"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	resp, err := h.svc.Register(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCredentialsTaken) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE", "Username or email already registered")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	resp, err := h.svc.Login(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
	}

	return c.JSON(resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	}

	h.svc.Logout(c.Context(), claims)
	return c.JSON(fiber.Map{"success": true})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	}

	u, err := h.svc.Me(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
	}

	return c.JSON(u)
}
