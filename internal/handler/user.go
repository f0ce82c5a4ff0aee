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

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List handles GET /api/users
func (h *UserHandler) List(c fiber.Ctx) error {
	page, limit := middleware.ParsePagination(c)

	result, err := h.svc.List(c.Context(), page, limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
	}
	return c.JSON(result)
}

// Create handles POST /api/users (admin). Unlike /auth/register this can
// create further admins and does not issue a token.
func (h *UserHandler) Create(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	var req model.UserCreateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	u, err := h.svc.Create(c.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrCredentialsTaken) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE", "Username or email already registered")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user")
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

// Get handles GET /api/users/:id (self or admin)
func (h *UserHandler) Get(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}
	if id != claims.UserID && !claims.IsAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "You can only view your own profile")
	}

	u, err := h.svc.Lookup(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
	}
	return c.JSON(u)
}

// Update handles PUT /api/users/:id (self or admin)
func (h *UserHandler) Update(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}
	if id != claims.UserID && !claims.IsAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "You can only edit your own profile")
	}

	var req model.UserUpdateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	// Only admins may grant or revoke the admin flag.
	if !claims.IsAdmin {
		req.IsAdmin = nil
	}

	u, err := h.svc.Update(c.Context(), claims.UserID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrCredentialsTaken):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE", "Email already in use")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update user")
	}
	return c.JSON(u)
}

// Delete handles DELETE /api/users/:id
func (h *UserHandler) Delete(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.Delete(c.Context(), claims.UserID, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrUserHasContent):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "HAS_DEPENDENTS",
				"The user still has comments or ratings and cannot be deleted")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete user")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
