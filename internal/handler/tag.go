package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/tubeshelf/tubeshelf-go/internal/middleware"
	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/service"
	"github.com/tubeshelf/tubeshelf-go/internal/validate"
)

type TagHandler struct {
	svc *service.CatalogService
}

func NewTagHandler(svc *service.CatalogService) *TagHandler {
	return &TagHandler{svc: svc}
}

// List handles GET /api/tags
func (h *TagHandler) List(c fiber.Ctx) error {
	tags, err := h.svc.ListTags(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tags")
	}
	return c.JSON(tags)
}

// Get handles GET /api/tags/:id
func (h *TagHandler) Get(c fiber.Ctx) error {
	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	tag, err := h.svc.GetTag(c.Context(), id)
	if err != nil {
		return catalogError(c, err, "tag", "Failed to load tag")
	}
	return c.JSON(tag)
}

// Create handles POST /api/tags
func (h *TagHandler) Create(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	var req model.TagRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	tag, err := h.svc.CreateTag(c.Context(), claims.UserID, req)
	if err != nil {
		return catalogError(c, err, "tag", "Failed to create tag")
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// Update handles PUT /api/tags/:id
func (h *TagHandler) Update(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	var req model.TagRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	tag, err := h.svc.UpdateTag(c.Context(), claims.UserID, id, req)
	if err != nil {
		return catalogError(c, err, "tag", "Failed to update tag")
	}
	return c.JSON(tag)
}

// Delete handles DELETE /api/tags/:id
func (h *TagHandler) Delete(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.DeleteTag(c.Context(), claims.UserID, id); err != nil {
		return catalogError(c, err, "tag", "Failed to delete tag")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
