// Package advice sends career prompts to Gemini and returns the generated report.
package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadolammi/careerpath/internal/career"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ContentGenerator is the part of the genai Models service the client uses.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient calls GenerateContent directly, one request per prompt.
type GeminiClient struct {
	models ContentGenerator
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return NewGeminiClientWith(client.Models, model), nil
}

// NewGeminiClientWith wraps an existing generator.
func NewGeminiClientWith(models ContentGenerator, model string) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClient{models: models, model: model}
}

// Advise implements career.Advisor.
func (c *GeminiClient) Advise(ctx context.Context, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return textFromResponse(resp)
}

// textFromResponse returns the text of the first candidate. A response
// without candidates, or whose first candidate has no text, is reported as
// career.ErrEmptyGeneration.
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", career.ErrEmptyGeneration
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: candidate has no content", career.ErrEmptyGeneration)
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		parts = append(parts, part.Text)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: candidate has no text", career.ErrEmptyGeneration)
	}
	return strings.Join(parts, ""), nil
}
