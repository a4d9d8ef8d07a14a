package advice

import (
	"context"
	"errors"
	"testing"

	"github.com/muhammadolammi/careerpath/internal/career"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	resp     *genai.GenerateContentResponse
	err      error
	model    string
	contents []*genai.Content
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	return f.resp, f.err
}

func responseWith(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
		},
	}
}

func TestGeminiClient_Advise(t *testing.T) {
	gen := &fakeGenerator{resp: responseWith(&genai.Part{Text: "## Paths\n"}, &genai.Part{Text: "- Analyst"})}
	client := NewGeminiClientWith(gen, "")

	text, err := client.Advise(context.Background(), "my prompt")
	require.NoError(t, err)

	assert.Equal(t, "## Paths\n- Analyst", text)
	assert.Equal(t, DefaultModel, gen.model)
	require.Len(t, gen.contents, 1)
	require.Len(t, gen.contents[0].Parts, 1)
	assert.Equal(t, "my prompt", gen.contents[0].Parts[0].Text)
}

func TestGeminiClient_CallError(t *testing.T) {
	client := NewGeminiClientWith(&fakeGenerator{err: errors.New("503 unavailable")}, "gemini-2.5-pro")

	_, err := client.Advise(context.Background(), "prompt")
	require.Error(t, err)
	assert.False(t, errors.Is(err, career.ErrEmptyGeneration))
	assert.Contains(t, err.Error(), "503 unavailable")
}

func TestTextFromResponse_Empty(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"no parts", responseWith()},
		{"only thoughts", responseWith(&genai.Part{Text: "thinking", Thought: true})},
		{"empty text", responseWith(&genai.Part{Text: ""})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := textFromResponse(tt.resp)
			require.ErrorIs(t, err, career.ErrEmptyGeneration)
			assert.Equal(t, career.MsgNoResponse, career.Message(err))
		})
	}
}

func TestTextFromResponse_SkipsThoughts(t *testing.T) {
	text, err := textFromResponse(responseWith(
		&genai.Part{Text: "internal reasoning", Thought: true},
		&genai.Part{Text: "Final report"},
	))
	require.NoError(t, err)
	assert.Equal(t, "Final report", text)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", DefaultModel)
	require.Error(t, err)
}
