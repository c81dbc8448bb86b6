package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	mid "github.com/repradar/backend/internal/server/middleware"
	"github.com/repradar/backend/internal/util"
	"github.com/repradar/backend/pkg/ai"
	aiollama "github.com/repradar/backend/pkg/ai/ollama"
	aiopenai "github.com/repradar/backend/pkg/ai/openai"
	"github.com/repradar/backend/pkg/analysis"
	"github.com/repradar/backend/pkg/logger"
	"github.com/repradar/backend/pkg/providers"
	"github.com/repradar/backend/pkg/providers/apify"
	"github.com/repradar/backend/pkg/providers/googleplaces"
	"github.com/repradar/backend/pkg/providers/outscraper"
	"github.com/repradar/backend/pkg/providers/serp"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// newCompletionClient builds the completion client from the environment.
// Returns nil when no model is configured; analysis then degrades to its
// placeholder report instead of crashing.
func newCompletionClient() ai.CompletionClient {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := aiollama.NewClient(aiollama.NewClientParams{
			ChatModel:             util.GetEnvString("AI_CHAT_MODEL", "llama3.1"),
			BaseURL:               util.GetEnv("AI_CHAT_URL"),
			APIKey:                util.GetEnv("AI_CHAT_KEY"),
			MaxConcurrentRequests: int64(util.GetEnvInt("AI_PARALLEL_REQ", 4)),
		})
		if err != nil {
			logger.Error("Failed to create Ollama client, analysis disabled", "err", err)
			return nil
		}
		return client
	default:
		apiKey := util.GetEnv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Warn("OPENAI_API_KEY not set, reputation analysis disabled")
			return nil
		}
		return aiopenai.NewClient(aiopenai.NewClientParams{
			ChatModel: util.GetEnvString("AI_CHAT_MODEL", "gpt-4"),
			BaseURL:   util.GetEnv("AI_CHAT_URL"),
			APIKey:    apiKey,
		})
	}
}

// newApp wires the provider adapters, search client, and analyzer from the
// environment. Credentials are read once here and injected; a missing
// credential degrades the matching component at call time.
func newApp() *mid.App {
	httpClient := providers.NewHTTPClient()

	outscraperAdapter := outscraper.NewAdapter(outscraper.AdapterParams{
		APIKey:     util.GetEnv("OUTSCRAPER_API_KEY"),
		HTTPClient: httpClient,
	})

	registry := providers.NewRegistry()
	registry.Register("google_places", googleplaces.NewAdapter(googleplaces.AdapterParams{
		APIKey:     util.GetEnv("GOOGLE_API_KEY"),
		HTTPClient: httpClient,
	}))
	registry.Register("apify", apify.NewAdapter(apify.AdapterParams{
		Token:      util.GetEnv("APIFY_TOKEN"),
		HTTPClient: httpClient,
	}))
	registry.Register("outscraper", outscraperAdapter)

	searchClient := serp.NewClient(serp.ClientParams{
		APIKey:     util.GetEnv("SERPAPI_KEY"),
		HTTPClient: httpClient,
	})

	return &mid.App{
		Providers:  registry,
		Outscraper: outscraperAdapter,
		Search:     searchClient,
		Analyzer:   analysis.NewAnalyzer(newCompletionClient()),
	}
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Renderer = NewTemplateRenderer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp()

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
