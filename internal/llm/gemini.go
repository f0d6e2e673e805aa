// Package llm wraps the Gemini API behind a one-method interface so the
// analysis service can be exercised with a substitute client in tests.
package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Generator produces the raw text completion for a single-turn prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient is the production Generator. It is constructed once at
// startup and injected into the analysis service; there is no lazy
// first-call initialization.
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

func NewGeminiClient(ctx context.Context, apiKey string, model string, maxTokens int32) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model, maxTokens: maxTokens}, nil
}

// Generate submits a single user-role message with a bounded output budget.
// The call is not retried; the caller's context is the only cancellation
// path.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}
