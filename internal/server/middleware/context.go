package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/repradar/backend/pkg/analysis"
	"github.com/repradar/backend/pkg/providers"
	"github.com/repradar/backend/pkg/providers/outscraper"
	"github.com/repradar/backend/pkg/providers/serp"
)

// App holds the process-wide dependencies built once at startup and injected
// into every request.
type App struct {
	Providers  *providers.Registry
	Outscraper *outscraper.Adapter
	Search     *serp.Client
	Analyzer   *analysis.Analyzer
}

// AppContext wraps the echo context with the application dependencies.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware attaches the shared App to each request context.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
