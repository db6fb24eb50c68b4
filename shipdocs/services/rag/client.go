// Package rag is the HTTP client for the local retrieval backend.
package rag

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shipdocs/shipdocs/utils/apperrors"
	httputils "shipdocs/shipdocs/utils/http"
	"shipdocs/shipdocs/utils/logging"

	"go.uber.org/zap"
)

// ragTimeout bounds the synchronous retrieval call; generation on the
// backend can take a while on CPU-only hosts.
const ragTimeout = 120 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: ragTimeout},
	}
}

type chatRequest struct {
	Message  string `json:"message"`
	PageURL  string `json:"page_url,omitempty"`
	PageText string `json:"page_text,omitempty"`
}

type ChatResult struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Chat sends the message plus optional page context to the retrieval
// backend. Any failure - transport, timeout, non-2xx - is surfaced as
// rag_unavailable; there is deliberately no fallback to the general
// provider for docs questions.
func (c *Client) Chat(ctx context.Context, message, pageURL, pageText string) (*ChatResult, error) {
	defer logging.LogDuration(ctx, "rag_chat")()

	var result ChatResult
	err := httputils.PostJSON(ctx, c.http, c.baseURL+"/chat", chatRequest{
		Message:  message,
		PageURL:  pageURL,
		PageText: pageText,
	}, &result)
	if err != nil {
		logging.ErrorLogger.Error("rag backend call failed", zap.Error(err))
		return nil, apperrors.New(apperrors.TypeRAGUnavailable,
			fmt.Sprintf("RAG backend unavailable (%v). Make sure the docs backend and Ollama are running.", err),
			err)
	}
	if result.Sources == nil {
		result.Sources = []string{}
	}
	logging.AppLogger.Info("rag answer received",
		zap.Int("answer_length", len(result.Answer)),
		zap.Int("sources", len(result.Sources)),
	)
	return &result, nil
}
