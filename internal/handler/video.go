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

type VideoHandler struct {
	svc *service.VideoService
}

func NewVideoHandler(svc *service.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// List handles GET /api/videos
func (h *VideoHandler) List(c fiber.Ctx) error {
	page, limit := middleware.ParsePagination(c)

	var filter model.VideoFilter
	if v := fiber.Query[int64](c, "categoryId"); v > 0 {
		filter.CategoryID = &v
	}
	if v := fiber.Query[int64](c, "subcategoryId"); v > 0 {
		filter.SubcategoryID = &v
	}
	if v := fiber.Query[int64](c, "tagId"); v > 0 {
		filter.TagID = &v
	}
	filter.Search = fiber.Query[string](c, "search")

	result, err := h.svc.List(c.Context(), filter, page, limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list videos")
	}
	return c.JSON(result)
}

// Get handles GET /api/videos/:id
func (h *VideoHandler) Get(c fiber.Ctx) error {
	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	v, err := h.svc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load video")
	}
	return c.JSON(v)
}

// Create handles POST /api/videos
func (h *VideoHandler) Create(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	var req model.VideoCreateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	youtubeID, errMsg := middleware.ValidateYouTubeID(req.YouTubeID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.YouTubeID = youtubeID

	v, err := h.svc.Create(c.Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateYouTubeID):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE", "A video with this youtubeId already exists")
		case errors.Is(err, service.ErrMissingParent):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REFERENCE", "Referenced category, subcategory or tag does not exist")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create video")
	}

	return c.Status(fiber.StatusCreated).JSON(v)
}

// Update handles PUT /api/videos/:id
func (h *VideoHandler) Update(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	var req model.VideoUpdateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	v, err := h.svc.Update(c.Context(), claims.UserID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		case errors.Is(err, service.ErrMissingParent):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REFERENCE", "Referenced category, subcategory or tag does not exist")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update video")
	}
	return c.JSON(v)
}

// Delete handles DELETE /api/videos/:id
func (h *VideoHandler) Delete(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.Delete(c.Context(), claims.UserID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete video")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
