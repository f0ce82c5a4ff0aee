package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/tubeshelf/tubeshelf-go/internal/middleware"
	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/repository"
	"github.com/tubeshelf/tubeshelf-go/internal/service"
	"github.com/tubeshelf/tubeshelf-go/internal/validate"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// ListByVideo handles GET /api/videos/:id/comments
func (h *CommentHandler) ListByVideo(c fiber.Ctx) error {
	videoID, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	page, limit := middleware.ParsePagination(c)
	result, err := h.svc.ListByVideo(c.Context(), videoID, page, limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list comments")
	}
	return c.JSON(result)
}

// Create handles POST /api/videos/:id/comments
func (h *CommentHandler) Create(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	videoID, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	var req model.CommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	comment, err := h.svc.Create(c.Context(), claims.UserID, videoID, req.Content)
	if err != nil {
		var cooling *service.ErrCoolingDown
		switch {
		case errors.As(err, &cooling):
			// waitTime lets clients show a countdown before retrying.
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    "COMMENT_COOLDOWN",
					"message": fmt.Sprintf("Please wait %d seconds before commenting again", cooling.WaitSeconds),
				},
				"waitTime": cooling.WaitSeconds,
			})
		case errors.Is(err, service.ErrMissingVideo):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to post comment")
	}

	if Metrics.CommentsTotal != nil {
		Metrics.CommentsTotal.Inc()
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// Update handles PUT /api/comments/:id
func (h *CommentHandler) Update(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	var req model.CommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	existing, err := h.svc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Comment not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load comment")
	}
	if existing.UserID != claims.UserID && !claims.IsAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "You can only edit your own comments")
	}

	comment, err := h.svc.Update(c.Context(), claims.UserID, id, req.Content)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update comment")
	}
	return c.JSON(comment)
}

// Delete handles DELETE /api/comments/:id
func (h *CommentHandler) Delete(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	existing, err := h.svc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Comment not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load comment")
	}
	if existing.UserID != claims.UserID && !claims.IsAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "You can only delete your own comments")
	}

	if err := h.svc.Delete(c.Context(), claims.UserID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Comment not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete comment")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
