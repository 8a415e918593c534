package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes mounts the API under /api/v1.
func SetupRoutes(app *fiber.App, upload *UploadHandler, candidates *CandidateHandler, extract *ExtractHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/resumes", upload.HandleUpload)
	api.Post("/extract", extract.HandleExtract)

	// Static paths first so they are not taken as an :id.
	api.Get("/candidates", candidates.HandleList)
	api.Get("/candidates/stats", candidates.HandleStats)
	api.Get("/candidates/export", candidates.HandleExport)
	api.Get("/candidates/search", candidates.HandleSearch)
	api.Get("/candidates/:id", candidates.HandleGet)
	api.Delete("/candidates/:id", candidates.HandleDelete)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resumes",
				"POST /api/v1/extract",
				"GET /api/v1/candidates",
				"GET /api/v1/candidates/stats",
				"GET /api/v1/candidates/export",
				"GET /api/v1/candidates/search",
				"GET /api/v1/candidates/:id",
				"DELETE /api/v1/candidates/:id",
			},
		})
	})
}
