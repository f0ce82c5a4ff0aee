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

type ImportHandler struct {
	svc *service.ImportService
}

func NewImportHandler(svc *service.ImportService) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// ImportPlaylist handles POST /api/import/youtube
func (h *ImportHandler) ImportPlaylist(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	var req model.ImportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	summary, err := h.svc.ImportPlaylist(c.Context(), &claims.UserID, req.PlaylistURL, req.CategoryID)
	if err != nil {
		if errors.Is(err, service.ErrImporterDisabled) {
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "IMPORTER_DISABLED",
				"YouTube import is not configured on this server")
		}
		if _, idErr := service.ExtractPlaylistID(req.PlaylistURL); idErr != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PLAYLIST", idErr.Error())
		}
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "Failed to fetch playlist from YouTube")
	}

	if Metrics.ImportedVideos != nil {
		Metrics.ImportedVideos.WithLabelValues("imported").Add(float64(summary.Imported))
		Metrics.ImportedVideos.WithLabelValues("updated").Add(float64(summary.Updated))
		Metrics.ImportedVideos.WithLabelValues("skipped").Add(float64(summary.Skipped))
		Metrics.ImportedVideos.WithLabelValues("failed").Add(float64(summary.Failed))
	}
	return c.JSON(summary)
}

// ListChannels handles GET /api/import/channels
func (h *ImportHandler) ListChannels(c fiber.Ctx) error {
	channels, err := h.svc.ListChannels(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list watched channels")
	}
	return c.JSON(channels)
}

// WatchChannel handles POST /api/import/channels
func (h *ImportHandler) WatchChannel(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	var req model.WatchedChannelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if fields := validate.Map(req); fields != nil {
		return middleware.ValidationErrorResponse(c, fields)
	}

	channelID, errMsg := middleware.ValidateChannelID(req.ChannelID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.ChannelID = channelID

	ch, err := h.svc.WatchChannel(c.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrChannelWatched) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE", "Channel is already watched")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to watch channel")
	}
	return c.Status(fiber.StatusCreated).JSON(ch)
}

// UnwatchChannel handles DELETE /api/import/channels/:id
func (h *ImportHandler) UnwatchChannel(c fiber.Ctx) error {
	claims := middleware.GetClaims(c)

	id, errMsg := middleware.ParseIDParam(c, "id")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	if err := h.svc.UnwatchChannel(c.Context(), claims.UserID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Watched channel not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to unwatch channel")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
