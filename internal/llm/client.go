package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over one LLM backend. Implementations must be safe
// for concurrent use; a client is created once per tier and shared by every
// worker routed to that tier.
type Client interface {
	// Generate produces free-text output for a prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateJSON produces output constrained to a JSON MIME type where the
	// backend supports it; the result still goes through the resilient parser.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Model returns the backing model identifier, for execution metadata.
	Model() string
	// Close releases resources held by the client.
	Close() error
}

// GeminiClient implements Client for one Google Gemini model at a fixed
// temperature.
type GeminiClient struct {
	client *genai.Client
	tc     TierConfig
}

// NewGeminiClient creates a client bound to the given tier configuration.
func NewGeminiClient(ctx context.Context, tc TierConfig, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &ConfigError{Message: "API key is required"}
	}
	if tc.ModelID == "" {
		return nil, &ConfigError{Message: fmt.Sprintf("no model configured for tier %s", tc.Tier)}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, tc: tc}, nil
}

// Generate produces free-text output for a prompt.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.tc.ModelID)
	model.SetTemperature(c.tc.Temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return extractTextFromResponse(resp)
}

// GenerateJSON produces output with the JSON response MIME type set.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.tc.ModelID)
	model.SetTemperature(c.tc.Temperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return extractTextFromResponse(resp)
}

// Model returns the backing model identifier.
func (c *GeminiClient) Model() string {
	return c.tc.ModelID
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse joins the text parts of a Gemini response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
