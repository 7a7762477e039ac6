// Package llm wraps the hosted text-generation collaborator.
// The service layer depends on a narrow interface defined on the consumer
// side (service.TextGenerator); this package provides the production
// implementation on top of the official genai client.
package llm

import (
	"context"
	"errors"
	"fmt"

	genai "google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model answers with no text candidate.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// GeminiClient is a thin wrapper around the official genai client.
// It only performs the API call itself; prompt construction, sequencing,
// and failure policy belong to the calling service.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

// NewGeminiClient constructs a client for the given model. The API key comes
// from configuration — it is never read from a hard-coded credential.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm.NewGeminiClient: %w", err)
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

// Generate sends one free-text prompt and returns the raw completion text.
// The response content has no structured schema; callers must treat it as
// untrusted free text.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("llm.GeminiClient.Generate: %w", err)
	}
	if len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
