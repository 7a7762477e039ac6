package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Euphoric-Coder/Travel-Insights/internal/domain"
)

// AskService answers one-off free-text travel questions via the text
// generator. No conversation state is kept.
type AskService struct {
	gen TextGenerator
}

// NewAskService constructs an AskService with the given generator.
func NewAskService(gen TextGenerator) *AskService {
	return &AskService{gen: gen}
}

// Ask sends the question and returns the raw completion text.
// Empty or whitespace-only questions are rejected with domain.ErrValidation.
func (s *AskService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", domain.ErrValidation)
	}

	prompt := "You are a helpful travel assistant. Answer the following question concisely.\n\n" + question
	answer, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("service.AskService.Ask: %w", err)
	}
	return answer, nil
}
