package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("  Learn SQL "), genai.Text("first.\n")}},
		}},
	}
	text, err := geminiText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Learn SQL first.", text)
}

func TestGeminiText_Empty(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"whitespace only", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("  ")}},
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := geminiText(tt.resp)
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestGeminiText_Blocked(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
	}
	_, err := geminiText(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt blocked")

	resp = &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	}
	_, err = geminiText(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "response blocked")
}

