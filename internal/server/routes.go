package server

import (
	"github.com/labstack/echo/v4"

	"github.com/repradar/backend/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Search form UI
	e.GET("/", routes.IndexHandler)
	e.POST("/search", routes.SearchHandler)

	// Review routes
	e.GET("/trustpilot-reviews", routes.TrustpilotReviewsHandler)
	e.GET("/api/trustpilot-reviews", routes.APITrustpilotReviewsHandler)

	// Analysis routes
	e.POST("/api/ai-search", routes.AISearchHandler)
}
