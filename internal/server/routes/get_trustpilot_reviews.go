package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/repradar/backend/internal/server/middleware"
	"github.com/repradar/backend/pkg/providers/outscraper"
	"github.com/repradar/backend/pkg/reputation"
)

type trustpilotResponse struct {
	Reviews []reputation.ReviewRecord `json:"reviews"`
}

// TrustpilotReviewsHandler returns Trustpilot reviews for a domain.
func TrustpilotReviewsHandler(c echo.Context) error {
	domain := c.QueryParam("domain")
	if domain == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Missing required parameter: domain",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	reviews := app.Outscraper.TrustpilotReviews(ctx, []string{domain}, outscraper.DefaultTrustpilotLimit)
	return c.JSON(http.StatusOK, trustpilotResponse{Reviews: reviews})
}

// APITrustpilotReviewsHandler returns Trustpilot reviews for a full
// Trustpilot URL.
func APITrustpilotReviewsHandler(c echo.Context) error {
	rawURL := c.QueryParam("url")
	if rawURL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Missing required parameter: url",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	reviews := app.Outscraper.TrustpilotReviews(ctx, []string{rawURL}, outscraper.DefaultTrustpilotLimit)
	return c.JSON(http.StatusOK, trustpilotResponse{Reviews: reviews})
}
