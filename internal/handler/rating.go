package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/tubeshelf/tubeshelf-go/internal/middleware"
	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/service"
	"github.com/tubeshelf/tubeshelf-go/internal/validate"
)

type RatingHandler struct {
	svc *service.RatingService
}

func NewRatingHandler(svc *service.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

// Get handles GET /api/videos/:id/rating. userRating is only present when
// the request carries a valid token.
func (h *RatingHandler) Get(c fiber.Ctx) error {
	videoID, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	var userID *int64
	if claims := middleware.GetClaims(c); claims != nil {
		userID = &claims.UserID
	}

	resp, err := h.svc.Get(c.Context(), videoID, userID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load rating")
	}
	return c.JSON(resp)
}

// Submit handles POST /api/videos/:id/rating. Resubmitting replaces the
// caller's previous score.
func (h *RatingHandler) Submit(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	videoID, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	var req model.RatingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	resp, err := h.svc.Submit(c.Context(), videoID, claims.UserID, req.Score)
	if err != nil {
		if errors.Is(err, service.ErrMissingVideo) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit rating")
	}

	if Metrics.RatingsTotal != nil {
		Metrics.RatingsTotal.WithLabelValues(strconv.Itoa(req.Score)).Inc()
	}
	return c.JSON(resp)
}
