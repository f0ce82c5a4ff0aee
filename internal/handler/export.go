package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/tubeshelf/tubeshelf-go/internal/middleware"
	"github.com/tubeshelf/tubeshelf-go/internal/service"
)

type ExportHandler struct {
	svc *service.ExportService
}

func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Export handles GET /api/admin/export
// Streams the full catalog as a downloadable JSON document.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	export, err := h.svc.FullCatalog(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export catalog")
	}

	c.Set("Content-Disposition", `attachment; filename="tubeshelf-export.json"`)
	return c.JSON(export)
}
