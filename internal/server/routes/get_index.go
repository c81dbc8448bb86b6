package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// IndexHandler renders the search form.
func IndexHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", nil)
}
