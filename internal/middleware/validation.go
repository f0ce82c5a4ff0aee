package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxYouTubeIDLen = 16 // videos.youtube_id VARCHAR(16)
	MaxChannelIDLen = 32 // watched_channels.channel_id VARCHAR(32)

	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

var (
	// youtubeIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	youtubeIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{8,16}$`)
	// channelIDRe matches YouTube channel IDs (UC... / UU...).
	channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{10,32}$`)
)

// ErrorResponse returns the standard API error envelope.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidationErrorResponse returns a 400 with per-field error detail.
func ValidationErrorResponse(c fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "VALIDATION_ERROR",
			"message": "Request body failed validation",
			"details": fields,
		},
	})
}

// ParseIDParam parses a numeric path parameter. Returns 0 and a message on
// non-numeric or non-positive input.
func ParseIDParam(c fiber.Ctx, name string) (int64, string) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, name + " must be a positive integer"
	}
	return id, ""
}

// ParsePagination reads page/limit query params with defaults and clamping.
func ParsePagination(c fiber.Ctx) (page, limit int) {
	page = fiber.Query[int](c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit = fiber.Query[int](c, "limit", DefaultPageLimit)
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// ValidateYouTubeID checks that a YouTube video ID is well-formed.
func ValidateYouTubeID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "youtubeId is required"
	}
	if !youtubeIDRe.MatchString(id) {
		return "", "youtubeId must be 8-16 characters of [A-Za-z0-9_-]"
	}
	return id, ""
}

// ValidateChannelID checks that a YouTube channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 32 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}
