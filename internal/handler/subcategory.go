package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/tubeshelf/tubeshelf-go/internal/middleware"
	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/service"
	"github.com/tubeshelf/tubeshelf-go/internal/validate"
)

type SubcategoryHandler struct {
	svc *service.CatalogService
}

func NewSubcategoryHandler(svc *service.CatalogService) *SubcategoryHandler {
	return &SubcategoryHandler{svc: svc}
}

// List handles GET /api/subcategories?categoryId=X
func (h *SubcategoryHandler) List(c fiber.Ctx) error {
	var categoryID *int64
	if v := fiber.Query[int64](c, "categoryId"); v > 0 {
		categoryID = &v
	}

	subs, err := h.svc.ListSubcategories(c.Context(), categoryID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list subcategories")
	}
	return c.JSON(subs)
}

// Get handles GET /api/subcategories/:id
func (h *SubcategoryHandler) Get(c fiber.Ctx) error {
	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	sub, err := h.svc.GetSubcategory(c.Context(), id)
	if err != nil {
		return catalogError(c, err, "subcategory", "Failed to load subcategory")
	}
	return c.JSON(sub)
}

// Create handles POST /api/subcategories
func (h *SubcategoryHandler) Create(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	var req model.SubcategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	sub, err := h.svc.CreateSubcategory(c.Context(), claims.UserID, req)
	if err != nil {
		return catalogError(c, err, "subcategory", "Failed to create subcategory")
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// Update handles PUT /api/subcategories/:id
func (h *SubcategoryHandler) Update(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	var req model.SubcategoryRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	sub, err := h.svc.UpdateSubcategory(c.Context(), claims.UserID, id, req)
	if err != nil {
		return catalogError(c, err, "subcategory", "Failed to update subcategory")
	}
	return c.JSON(sub)
}

// Delete handles DELETE /api/subcategories/:id
func (h *SubcategoryHandler) Delete(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.DeleteSubcategory(c.Context(), claims.UserID, id); err != nil {
		return catalogError(c, err, "subcategory", "Failed to delete subcategory")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
