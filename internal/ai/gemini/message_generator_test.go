package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/shipmate/internal/config"
	domainErrors "github.com/thomas-vilte/shipmate/internal/errors"
	"google.golang.org/genai"
)

func testAIConfig() *config.Config {
	return &config.Config{
		AI: config.AIConfig{
			Model:           "gemini-2.5-flash",
			MaxOutputTokens: 1024,
		},
		Credentials: config.Credentials{APIKey: "test-key"},
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{{Text: text}},
				},
			},
		},
	}
}

func TestNewMessageGenerator_MissingAPIKey(t *testing.T) {
	cfg := testAIConfig()
	cfg.Credentials.APIKey = ""

	_, err := NewMessageGenerator(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainErrors.ErrAPIKeyMissing))
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "title and body split on first blank line",
			raw:       "Add login flow\n\nThis PR adds OAuth login.",
			wantTitle: "Add login flow",
			wantBody:  "This PR adds OAuth login.",
		},
		{
			name:      "no blank line means whole text is the title",
			raw:       "Fix typo in README",
			wantTitle: "Fix typo in README",
			wantBody:  "",
		},
		{
			name:      "multiple paragraphs stay in the body",
			raw:       "Refactor parser\n\nFirst paragraph.\n\nSecond paragraph.",
			wantTitle: "Refactor parser",
			wantBody:  "First paragraph.\n\nSecond paragraph.",
		},
		{
			name:      "surrounding whitespace is trimmed",
			raw:       "\n  Add caching  \n\n  Body text.  \n",
			wantTitle: "Add caching",
			wantBody:  "Body text.",
		},
		{
			name:      "windows line endings are normalized",
			raw:       "Add metrics\r\n\r\nExports request counters.",
			wantTitle: "Add metrics",
			wantBody:  "Exports request counters.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := SplitMessage(tt.raw)
			assert.Equal(t, tt.wantTitle, msg.Title)
			assert.Equal(t, tt.wantBody, msg.Body)
			assert.NotContains(t, msg.Title, "\n")
		})
	}
}

func TestMessageGenerator_Summarize(t *testing.T) {
	t.Run("parses title and body from the model response", func(t *testing.T) {
		service := &MessageGenerator{cfg: testAIConfig()}
		service.generateFn = func(_ context.Context, model string, diff string) (*genai.GenerateContentResponse, error) {
			assert.Equal(t, "gemini-2.5-flash", model)
			assert.Contains(t, diff, "+hello")
			return textResponse("Add greeting\n\nAdds a hello file."), nil
		}

		msg, err := service.Summarize(context.Background(), "diff --git a/a.txt b/a.txt\n+hello")
		require.NoError(t, err)
		assert.Equal(t, "Add greeting", msg.Title)
		assert.Equal(t, "Adds a hello file.", msg.Body)
	})

	t.Run("response without blank line becomes a bare title", func(t *testing.T) {
		service := &MessageGenerator{cfg: testAIConfig()}
		service.generateFn = func(_ context.Context, _ string, _ string) (*genai.GenerateContentResponse, error) {
			return textResponse("Fix flaky test"), nil
		}

		msg, err := service.Summarize(context.Background(), "some diff")
		require.NoError(t, err)
		assert.Equal(t, "Fix flaky test", msg.Title)
		assert.Empty(t, msg.Body)
	})

	t.Run("thought parts are skipped", func(t *testing.T) {
		service := &MessageGenerator{cfg: testAIConfig()}
		service.generateFn = func(_ context.Context, _ string, _ string) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{
						Content: &genai.Content{
							Parts: []*genai.Part{
								{Text: "internal reasoning", Thought: true},
								{Text: "Add feature\n\nThe body."},
							},
						},
					},
				},
			}, nil
		}

		msg, err := service.Summarize(context.Background(), "some diff")
		require.NoError(t, err)
		assert.Equal(t, "Add feature", msg.Title)
	})

	t.Run("empty diff is rejected before any call", func(t *testing.T) {
		called := false
		service := &MessageGenerator{cfg: testAIConfig()}
		service.generateFn = func(_ context.Context, _ string, _ string) (*genai.GenerateContentResponse, error) {
			called = true
			return textResponse("unused"), nil
		}

		_, err := service.Summarize(context.Background(), "   \n ")
		require.Error(t, err)
		assert.False(t, called, "no model call should happen for an empty diff")
	})

	t.Run("empty response is an AI error", func(t *testing.T) {
		service := &MessageGenerator{cfg: testAIConfig()}
		service.generateFn = func(_ context.Context, _ string, _ string) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{}, nil
		}

		_, err := service.Summarize(context.Background(), "some diff")
		require.Error(t, err)

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.TypeAI, appErr.Type)
	})

	t.Run("transport errors are surfaced unmodified", func(t *testing.T) {
		transportErr := errors.New("connection reset")
		service := &MessageGenerator{cfg: testAIConfig()}
		service.generateFn = func(_ context.Context, _ string, _ string) (*genai.GenerateContentResponse, error) {
			return nil, transportErr
		}

		_, err := service.Summarize(context.Background(), "some diff")
		assert.ErrorIs(t, err, transportErr)
	})
}
