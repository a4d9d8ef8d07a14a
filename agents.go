package main

import (
	"context"
	"fmt"

	"github.com/muhammadolammi/careerpath/internal/advice"
	"github.com/muhammadolammi/careerpath/internal/career"
	"github.com/muhammadolammi/careerpath/internal/config"
)

// newAdvisor picks the generative backend named by ADVICE_BACKEND.
func newAdvisor(ctx context.Context, cfg *config.Config) (career.Advisor, error) {
	switch cfg.AdviceBackend {
	case config.BackendAgent:
		client, err := advice.NewAgentClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create agent advisor: %w", err)
		}
		return client, nil
	case config.BackendGenAI:
		client, err := advice.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini advisor: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown advice backend %q", cfg.AdviceBackend)
	}
}
