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

type CategoryHandler struct {
	svc *service.CatalogService
}

func NewCategoryHandler(svc *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(c fiber.Ctx) error {
	cats, err := h.svc.ListCategories(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list categories")
	}
	return c.JSON(cats)
}

// Get handles GET /api/categories/:id
func (h *CategoryHandler) Get(c fiber.Ctx) error {
	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	cat, err := h.svc.GetCategory(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Category not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load category")
	}
	return c.JSON(cat)
}

// Create handles POST /api/categories
func (h *CategoryHandler) Create(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	var req model.CategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	cat, err := h.svc.CreateCategory(c.Context(), claims.UserID, req)
	if err != nil {
		return catalogError(c, err, "category", "Failed to create category")
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// Update handles PUT /api/categories/:id
func (h *CategoryHandler) Update(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	var req model.CategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	cat, err := h.svc.UpdateCategory(c.Context(), claims.UserID, id, req)
	if err != nil {
		return catalogError(c, err, "category", "Failed to update category")
	}
	return c.JSON(cat)
}

// Delete handles DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.DeleteCategory(c.Context(), claims.UserID, id); err != nil {
		return catalogError(c, err, "category", "Failed to delete category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// catalogError maps the shared catalog service errors to HTTP responses.
func catalogError(c fiber.Ctx, err error, entity, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "The "+entity+" does not exist")
	case errors.Is(err, service.ErrSlugTaken):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE", "A "+entity+" with this name already exists")
	case errors.Is(err, service.ErrHasDependents):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "HAS_DEPENDENTS",
			"The "+entity+" still has dependent records and cannot be deleted")
	case errors.Is(err, service.ErrMissingParent):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REFERENCE", "Referenced parent does not exist")
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}
