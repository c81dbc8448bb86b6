package routes

import (
	"net/http"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/repradar/backend/internal/server/middleware"
	"github.com/repradar/backend/pkg/analysis"
	"github.com/repradar/backend/pkg/logger"
	"github.com/repradar/backend/pkg/providers"
	"github.com/repradar/backend/pkg/providers/outscraper"
	"github.com/repradar/backend/pkg/providers/serp"
	"github.com/repradar/backend/pkg/reputation"
)

// AISearchHandler runs the full aggregation-and-synthesis pipeline for a
// domain: Trustpilot reviews, negative web mentions, and a model-backed
// risk report decorated with presentation metadata.
func AISearchHandler(c echo.Context) error {
	type aiSearchBody struct {
		Domain string `json:"domain" validate:"required"`
	}

	type decoratedReport struct {
		reputation.Report
		RiskColor     string                 `json:"risk_color"`
		RiskBg        string                 `json:"risk_bg"`
		SearchResults []reputation.SearchHit `json:"search_results"`
		BusinessName  string                 `json:"business_name"`
		AnalysisID    string                 `json:"analysis_id"`
	}

	type aiSearchResponse struct {
		Success         bool             `json:"success"`
		Analysis        *decoratedReport `json:"analysis,omitempty"`
		SearchCount     int              `json:"search_count"`
		TrustpilotCount int              `json:"trustpilot_count"`
		Error           string           `json:"error,omitempty"`
	}

	data := new(aiSearchBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, aiSearchResponse{
			Success: false,
			Error:   "Domain is required",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, aiSearchResponse{
			Success: false,
			Error:   "Domain is required",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	businessName := providers.BusinessNameFromDomain(data.Domain)
	logger.Info("Running AI reputation search", "domain", data.Domain, "business", businessName)

	reviews := app.Outscraper.TrustpilotReviews(ctx, []string{data.Domain}, outscraper.DefaultTrustpilotLimit)
	hits := app.Search.SearchNegativeMentions(ctx, businessName, serp.DefaultLimit)
	searchContext := reputation.FormatHitsForAnalysis(hits, businessName)

	report := app.Analyzer.AnalyzeReputation(ctx, businessName, searchContext, reviews)

	analysisID, err := gonanoid.New()
	if err != nil {
		logger.Error("Failed to generate analysis id", "err", err)
		return c.JSON(http.StatusInternalServerError, aiSearchResponse{
			Success: false,
			Error:   "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, aiSearchResponse{
		Success: true,
		Analysis: &decoratedReport{
			Report:        report,
			RiskColor:     analysis.RiskLevelColor(report.RiskLevel),
			RiskBg:        analysis.RiskLevelBackground(report.RiskLevel),
			SearchResults: hits,
			BusinessName:  businessName,
			AnalysisID:    analysisID,
		},
		SearchCount:     len(hits),
		TrustpilotCount: len(reviews),
	})
}
