package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/tubeshelf/tubeshelf-go/internal/middleware"
	"github.com/tubeshelf/tubeshelf-go/internal/service"
)

type ActivityHandler struct {
	svc *service.ActivityService
}

func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// List handles GET /api/admin/activity
func (h *ActivityHandler) List(c fiber.Ctx) error {
	page, limit := middleware.ParsePagination(c)

	result, err := h.svc.List(c.Context(), page, limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list activity")
	}
	return c.JSON(result)
}
