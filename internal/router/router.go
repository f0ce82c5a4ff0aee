package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/tubeshelf/tubeshelf-go/internal/auth"
	"github.com/tubeshelf/tubeshelf-go/internal/handler"
	"github.com/tubeshelf/tubeshelf-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Video       *handler.VideoHandler
	Category    *handler.CategoryHandler
	Subcategory *handler.SubcategoryHandler
	Tag         *handler.TagHandler
	Comment     *handler.CommentHandler
	Rating      *handler.RatingHandler
	User        *handler.UserHandler
	Import      *handler.ImportHandler
	Activity    *handler.ActivityHandler
	Export      *handler.ExportHandler
	Stats       *handler.StatsHandler
	Health      *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given
// Fiber app. Tokens and revoker feed the auth middleware.
func Setup(app *fiber.App, h *Handlers, tokens *auth.TokenService, revoker middleware.TokenRevoker, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics sit outside the API group: no auth, no rate limits.
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	requireAuth := middleware.RequireAuth(tokens, revoker)
	optionalAuth := middleware.OptionalAuth(tokens, revoker)
	requireAdmin := middleware.RequireAdmin()

	authLimit := middleware.NewAuthRateLimiter().Handler()
	readLimit := middleware.NewReadRateLimiter().Handler()
	mutationLimit := middleware.NewMutationRateLimiter().Handler()
	commentLimit := middleware.NewCommentRateLimiter().Handler()
	importLimit := middleware.NewImportRateLimiter().Handler()

	api := app.Group("/api")

	// Auth routes
	api.Post("/auth/register", h.Auth.Register, authLimit)
	api.Post("/auth/login", h.Auth.Login, authLimit)
	api.Post("/auth/logout", h.Auth.Logout, requireAuth)
	api.Get("/auth/me", h.Auth.Me, requireAuth)

	// Video routes
	api.Get("/videos", h.Video.List, readLimit)
	api.Get("/videos/:id", h.Video.Get, readLimit)
	api.Post("/videos", h.Video.Create, requireAuth, requireAdmin, mutationLimit)
	api.Put("/videos/:id", h.Video.Update, requireAuth, requireAdmin, mutationLimit)
	api.Delete("/videos/:id", h.Video.Delete, requireAuth, requireAdmin, mutationLimit)

	// Category routes
	api.Get("/categories", h.Category.List, readLimit)
	api.Get("/categories/:id", h.Category.Get, readLimit)
	api.Post("/categories", h.Category.Create, requireAuth, requireAdmin, mutationLimit)
	api.Put("/categories/:id", h.Category.Update, requireAuth, requireAdmin, mutationLimit)
	api.Delete("/categories/:id", h.Category.Delete, requireAuth, requireAdmin, mutationLimit)

	// Subcategory routes
	api.Get("/subcategories", h.Subcategory.List, readLimit)
	api.Get("/subcategories/:id", h.Subcategory.Get, readLimit)
	api.Post("/subcategories", h.Subcategory.Create, requireAuth, requireAdmin, mutationLimit)
	api.Put("/subcategories/:id", h.Subcategory.Update, requireAuth, requireAdmin, mutationLimit)
	api.Delete("/subcategories/:id", h.Subcategory.Delete, requireAuth, requireAdmin, mutationLimit)

	// Tag routes
	api.Get("/tags", h.Tag.List, readLimit)
	api.Get("/tags/:id", h.Tag.Get, readLimit)
	api.Post("/tags", h.Tag.Create, requireAuth, requireAdmin, mutationLimit)
	api.Put("/tags/:id", h.Tag.Update, requireAuth, requireAdmin, mutationLimit)
	api.Delete("/tags/:id", h.Tag.Delete, requireAuth, requireAdmin, mutationLimit)

	// Comment routes (the service enforces the per-user cooldown on top of
	// the request rate limit)
	api.Get("/videos/:id/comments", h.Comment.ListByVideo, readLimit)
	api.Post("/videos/:id/comments", h.Comment.Create, requireAuth, commentLimit)
	api.Put("/comments/:id", h.Comment.Update, requireAuth, mutationLimit)
	api.Delete("/comments/:id", h.Comment.Delete, requireAuth, mutationLimit)

	// Rating routes
	api.Get("/videos/:id/rating", h.Rating.Get, optionalAuth, readLimit)
	api.Post("/videos/:id/rating", h.Rating.Submit, requireAuth, mutationLimit)

	// User routes
	api.Get("/users", h.User.List, requireAuth, requireAdmin)
	api.Post("/users", h.User.Create, requireAuth, requireAdmin, mutationLimit)
	api.Get("/users/:id", h.User.Get, requireAuth)
	api.Put("/users/:id", h.User.Update, requireAuth, mutationLimit)
	api.Delete("/users/:id", h.User.Delete, requireAuth, requireAdmin, mutationLimit)

	// Import routes
	api.Post("/import/youtube", h.Import.ImportPlaylist, requireAuth, requireAdmin, importLimit)
	api.Get("/import/channels", h.Import.ListChannels, requireAuth, requireAdmin)
	api.Post("/import/channels", h.Import.WatchChannel, requireAuth, requireAdmin, mutationLimit)
	api.Delete("/import/channels/:id", h.Import.UnwatchChannel, requireAuth, requireAdmin, mutationLimit)

	// Admin routes
	api.Get("/admin/activity", h.Activity.List, requireAuth, requireAdmin)
	api.Get("/admin/export", h.Export.Export, requireAuth, requireAdmin)

	// Stats
	api.Get("/stats", h.Stats.GetStats, readLimit)
}
