package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"mockmate/interview-api/internal/apperrors"
	"mockmate/interview-api/internal/models"
)

// ChatInvoker issues one chat call to the upstream model. No retry and
// no backoff: a provider failure is terminal for the request.
type ChatInvoker interface {
	Invoke(ctx context.Context, conversation models.Conversation, profile models.CallProfile) (string, error)
}

type geminiInvoker struct {
	client  *genai.Client
	log     zerolog.Logger
	timeout time.Duration
}

func NewGeminiInvoker(ctx context.Context, apiKey string, timeout time.Duration, log zerolog.Logger) (ChatInvoker, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiInvoker{
		client:  client,
		log:     log.With().Str("service", "gemini").Logger(),
		timeout: timeout,
	}, nil
}

// Invoke maps the conversation onto the genai request: system turns
// become the system instruction, assistant turns the "model" role.
// The full outbound message list is logged as the audit trail of what
// was actually sent.
func (g *geminiInvoker) Invoke(ctx context.Context, conversation models.Conversation, profile models.CallProfile) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var systemParts []string
	var contents []*genai.Content

	for _, turn := range conversation {
		switch turn.Role {
		case models.RoleSystem:
			systemParts = append(systemParts, turn.Content)
		case models.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleUser))
		}
	}

	temperature := profile.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: profile.MaxOutputTokens,
	}
	if profile.TopP > 0 {
		topP := profile.TopP
		config.TopP = &topP
	}
	if len(systemParts) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser)
	}
	if profile.JSONResponse {
		config.ResponseMIMEType = "application/json"
	}

	g.log.Info().
		Str("model", profile.Model).
		Interface("messages", conversation).
		Msg("sending chat request")

	resp, err := g.client.Models.GenerateContent(ctx, profile.Model, contents, config)
	if err != nil {
		return "", apperrors.NewUpstream("gemini.generate", err)
	}
	if resp == nil {
		return "", apperrors.NewUpstream("gemini.generate", fmt.Errorf("no response generated (nil response)"))
	}

	text := resp.Text()
	g.log.Debug().
		Str("model", profile.Model).
		Int("response_chars", len(text)).
		Msg("chat response received")

	return text, nil
}
