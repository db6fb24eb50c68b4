// Package llm is the OpenAI-compatible chat-completions client used for
// general-purpose (non-docs) messages.
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"shipdocs/shipdocs/utils/apperrors"
	httputils "shipdocs/shipdocs/utils/http"
	"shipdocs/shipdocs/utils/logging"

	"go.uber.org/zap"
)

const systemPrompt = "You are a helpful coding assistant. Be concise and professional."

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		http:    http.DefaultClient,
	}
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete runs a single non-streaming completion with the fixed system
// instruction. Provider failures come back already classified.
func (c *OpenAIClient) Complete(ctx context.Context, userMessage string) (string, error) {
	defer logging.LogDuration(ctx, "openai_complete")()

	req := completionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: 0.7,
		Stream:      false,
	}

	var parsed completionResponse
	err := httputils.PostJSONWithAuth(ctx, c.http, c.baseURL+"/chat/completions", c.apiKey, req, &parsed)
	if err != nil {
		return "", classifyProviderError(err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "I apologize, but I couldn't generate a response.", nil
	}
	answer := parsed.Choices[0].Message.Content
	logging.AppLogger.Info("openai answer received", zap.Int("answer_length", len(answer)))
	return answer, nil
}

// classifyProviderError maps provider status codes onto the error
// taxonomy. Transport-level errors fall through to the generic
// classifier so timeouts and refused connections keep their own types.
func classifyProviderError(err error) error {
	var statusErr *httputils.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}
	switch {
	case strings.Contains(statusErr.Body, "insufficient_quota"):
		return apperrors.New(apperrors.TypeQuotaExceeded,
			"The OpenAI API quota has been exceeded. Try asking a shipping-API question instead, which uses the local AI.",
			err)
	case statusErr.Code == http.StatusUnauthorized:
		return apperrors.New(apperrors.TypeAuthError,
			"The OpenAI API key is invalid or missing. Please check your configuration.",
			err)
	case statusErr.Code == http.StatusTooManyRequests:
		return apperrors.New(apperrors.TypeRateLimited,
			"Too many requests. Please wait a moment before sending another message.",
			err)
	default:
		return err
	}
}
