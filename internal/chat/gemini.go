package chat

import (
	"context"
	"strings"

	"google.golang.org/genai"

	apperrors "go-food-lens/internal/errors"
)

const defaultModel = "gemini-2.5-flash"

// Gemini wraps the generative-text provider behind a single Reply call.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client, model: defaultModel}, nil
}

// Reply forwards the user message to the model and returns its text answer.
// One best-effort call; failures surface as upstream errors.
func (g *Gemini) Reply(ctx context.Context, message string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(message), nil)
	if err != nil {
		return "", apperrors.NewUpstreamError("generative model call failed", err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", apperrors.NewUpstreamError("empty response from generative model", nil)
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", apperrors.NewUpstreamError("no text content in model response", nil)
	}
	return sb.String(), nil
}
