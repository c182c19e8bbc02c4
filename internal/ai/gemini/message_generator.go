package gemini

import (
	"context"
	"strings"

	"github.com/thomas-vilte/shipmate/internal/ai"
	"github.com/thomas-vilte/shipmate/internal/config"
	domainErrors "github.com/thomas-vilte/shipmate/internal/errors"
	"github.com/thomas-vilte/shipmate/internal/logger"
	"github.com/thomas-vilte/shipmate/internal/models"
	"github.com/thomas-vilte/shipmate/internal/ports"
	"google.golang.org/genai"
)

var _ ports.MessageGenerator = (*MessageGenerator)(nil)

// GenerateFunc performs the actual model call; tests substitute it.
type GenerateFunc func(ctx context.Context, model string, diff string) (*genai.GenerateContentResponse, error)

// MessageGenerator turns a diff into a PR title/body using Gemini.
type MessageGenerator struct {
	client     *genai.Client
	cfg        *config.Config
	generateFn GenerateFunc
}

func NewMessageGenerator(ctx context.Context, cfg *config.Config) (*MessageGenerator, error) {
	if cfg.Credentials.APIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Credentials.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}

	service := &MessageGenerator{
		client: client,
		cfg:    cfg,
	}
	service.generateFn = service.defaultGenerate

	return service, nil
}

func (g *MessageGenerator) defaultGenerate(ctx context.Context, model string, diff string) (*genai.GenerateContentResponse, error) {
	genConfig := &genai.GenerateContentConfig{
		// Deterministic sampling: the same diff yields the same message.
		Temperature:       float32Ptr(0),
		MaxOutputTokens:   int32(g.cfg.AI.MaxOutputTokens),
		SystemInstruction: genai.NewContentFromText(ai.PRMessageSystemInstruction, genai.RoleUser),
	}

	return g.client.Models.GenerateContent(ctx, model, genai.Text(diff), genConfig)
}

func (g *MessageGenerator) Summarize(ctx context.Context, diff string) (models.GeneratedMessage, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(diff) == "" {
		return models.GeneratedMessage{}, domainErrors.ErrNoDiff
	}

	log.Debug("calling gemini for PR message",
		"model", g.cfg.AI.Model,
		"diff_length", len(diff))

	resp, err := g.generateFn(ctx, g.cfg.AI.Model, diff)
	if err != nil {
		log.Error("gemini API call failed",
			"error", err,
			"model", g.cfg.AI.Model)
		return models.GeneratedMessage{}, err
	}

	raw := firstTextPart(resp)
	if raw == "" {
		return models.GeneratedMessage{}, domainErrors.ErrEmptyAIResponse.
			WithContext("operation", "summarize diff")
	}

	message := SplitMessage(raw)

	log.Info("PR message generated",
		"title", message.Title,
		"body_length", len(message.Body))

	return message, nil
}

// firstTextPart returns the first non-thought text block of the response.
func firstTextPart(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			if part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}

// SplitMessage splits a response on its first blank-line boundary: the text
// before it, trimmed, is the title; the rest, trimmed, is the body. Without
// a boundary the whole text becomes the title and the body stays empty.
func SplitMessage(raw string) models.GeneratedMessage {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))

	title, body, found := strings.Cut(raw, "\n\n")
	if !found {
		return models.GeneratedMessage{Title: strings.TrimSpace(raw)}
	}

	return models.GeneratedMessage{
		Title: strings.TrimSpace(title),
		Body:  strings.TrimSpace(body),
	}
}

func float32Ptr(f float32) *float32 {
	return &f
}
