package openai

import (
	"sync"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/repradar/backend/pkg/ai"
)

// Client implements ai.CompletionClient against an OpenAI-compatible
// chat-completion API.
//
// A Client should be created using NewClient.
type Client struct {
	chatModel string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewClientParams defines the configuration parameters for creating a Client.
//
// ChatModel specifies the model used for completions.
// BaseURL overrides the API endpoint; empty means the OpenAI default.
type NewClientParams struct {
	ChatModel string

	BaseURL string
	APIKey  string
}

// NewClient creates and returns a Client configured with the provided
// parameters.
//
// Example:
//
//	client := openai.NewClient(openai.NewClientParams{
//		ChatModel: "gpt-4o-mini",
//		APIKey:    os.Getenv("OPENAI_API_KEY"),
//	})
func NewClient(params NewClientParams) *Client {
	options := []option.RequestOption{
		option.WithAPIKey(params.APIKey),
	}
	if params.BaseURL != "" {
		options = append(options, option.WithBaseURL(params.BaseURL))
	}

	chatClient := openai.NewClient(options...)

	return &Client{
		chatModel:  params.ChatModel,
		ChatClient: &chatClient,
	}
}

func (c *Client) modifyMetrics(delta ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics.InputTokens += delta.InputTokens
	c.metrics.OutputTokens += delta.OutputTokens
	c.metrics.TotalTokens += delta.TotalTokens
	c.metrics.DurationMs += delta.DurationMs
}

// GetMetrics returns the accumulated model metrics.
func (c *Client) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	return c.metrics
}

// ResetMetrics clears the accumulated model metrics.
func (c *Client) ResetMetrics() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()

	c.metrics = ai.ModelMetrics{}
}
