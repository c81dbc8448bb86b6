package routes

import (
	"net/http"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"

	"github.com/repradar/backend/internal/server/middleware"
	"github.com/repradar/backend/pkg/providers"
	"github.com/repradar/backend/pkg/reputation"
)

// SearchHandler runs a business search via the chosen provider and renders
// the results view.
func SearchHandler(c echo.Context) error {
	type searchBody struct {
		Category  string `form:"category" validate:"required"`
		Location  string `form:"location" validate:"required"`
		APIChoice string `form:"api_choice" validate:"required"`
	}

	type resultsView struct {
		Query   string
		Results []reputation.BusinessRecord
	}

	data := new(searchBody)
	if err := c.Bind(data); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	query := providers.Query{
		Category: data.Category,
		Location: data.Location,
	}
	results := app.Providers.Fetch(ctx, data.APIChoice, query)

	return c.Render(http.StatusOK, "results.html", resultsView{
		Query:   query.FreeText(),
		Results: results,
	})
}
