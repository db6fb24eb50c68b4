package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shipdocs/shipdocs/utils/apperrors"
	"shipdocs/shipdocs/utils/logging"
)

func newTestClient(srvURL string) *OpenAIClient {
	logging.InitLogger()
	return NewOpenAIClient("sk-test", srvURL, "gpt-4o-mini")
}

func TestComplete_Success(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer token")
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "here you go"}},
			},
		})
	}))
	defer srv.Close()

	answer, err := newTestClient(srv.URL).Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if answer != "here you go" {
		t.Errorf("unexpected answer: %q", answer)
	}
	if got.Model != "gpt-4o-mini" {
		t.Errorf("expected configured model, got %s", got.Model)
	}
	if got.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", got.Temperature)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "hello" {
		t.Errorf("expected system+user messages, got %v", got.Messages)
	}
}

func TestComplete_EmptyChoicesGetsFallbackText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	answer, err := newTestClient(srv.URL).Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if answer == "" {
		t.Errorf("expected fallback answer text")
	}
}

func TestComplete_ErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   apperrors.Type
	}{
		{"auth", http.StatusUnauthorized, `{"error":{"code":"invalid_api_key"}}`, apperrors.TypeAuthError},
		{"rate limit", http.StatusTooManyRequests, `{"error":{"type":"rate_limit_exceeded"}}`, apperrors.TypeRateLimited},
		{"quota", http.StatusTooManyRequests, `{"error":{"code":"insufficient_quota"}}`, apperrors.TypeQuotaExceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Complete(context.Background(), "hello")
			if err == nil {
				t.Fatal("expected error")
			}
			var chatErr *apperrors.ChatError
			if !errors.As(err, &chatErr) {
				t.Fatalf("expected classified error, got %T", err)
			}
			if chatErr.Type != tc.want {
				t.Errorf("expected %s, got %s", tc.want, chatErr.Type)
			}
		})
	}
}

func TestComplete_ServerErrorStaysUnclassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.Classify(err).Type != apperrors.TypeUnknown {
		t.Errorf("expected unknown classification")
	}
}
