package advice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careerpath/internal/career"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	agentName        = "career advisor"
	agentUserID      = "careerpath"
	agentInstruction = `You are a Career and Salary Forecasting AI.
Answer the user's message with the career report it asks for.
Use Markdown bullet points and clear formatting. Do not ask follow-up questions.`
)

// AgentClient runs each prompt through an ADK agent in a throwaway session,
// so no conversation state carries over between submissions.
type AgentClient struct {
	runner   *runner.Runner
	sessions session.Service
	appName  string
}

func NewAgentClient(ctx context.Context, apiKey, modelName string) (*AgentClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	advisor, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: "Forecast career paths and salaries",
		Instruction: agentInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        advisor.Name(),
		Agent:          advisor,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &AgentClient{runner: r, sessions: sessions, appName: advisor.Name()}, nil
}

// Advise implements career.Advisor.
func (c *AgentClient) Advise(ctx context.Context, prompt string) (string, error) {
	created, err := c.sessions.Create(ctx, &session.CreateRequest{
		AppName:   c.appName,
		UserID:    agentUserID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	defer func() {
		err := c.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   created.Session.AppName(),
			UserID:    created.Session.UserID(),
			SessionID: created.Session.ID(),
		})
		if err != nil {
			slog.Warn("failed to delete agent session", "agent_session_id", created.Session.ID(), "error", err)
		}
	}()

	stream := c.runner.Run(ctx, created.Session.UserID(), created.Session.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", fmt.Errorf("agent stream error: %w", err)
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if output == "" {
		return "", fmt.Errorf("%w: empty agent response", career.ErrEmptyGeneration)
	}
	return output, nil
}
