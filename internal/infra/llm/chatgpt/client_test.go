package chatgpt

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/wellness-hub/internal/domain/companion"
	apperrors "github.com/yanqian/wellness-hub/pkg/errors"
)

func TestClient_ChatSendsConversation(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeCompletion(w, "I'm here with you.")
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	reply, err := client.Chat(context.Background(), []companion.Message{
		{Role: companion.RoleSystem, Content: "be kind"},
		{Role: companion.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	require.Equal(t, "I'm here with you.", reply)
	require.Equal(t, "test-model", body["model"])
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	first := msgs[0].(map[string]any)
	require.Equal(t, "system", first["role"])
}

func TestClient_ChatRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
			return
		}
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	reply, err := client.Chat(context.Background(), []companion.Message{{Role: companion.RoleUser, Content: "hi"}})
	require.NoError(t, err)
	require.Equal(t, "ok", reply)
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_ChatDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Chat(context.Background(), []companion.Message{{Role: companion.RoleUser, Content: "hi"}})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "llm_error"))
	require.Equal(t, int32(1), calls.Load())
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Chat(context.Background(), nil)
	require.True(t, apperrors.IsCode(err, "llm_error"))
}

func TestRetryable(t *testing.T) {
	require.False(t, retryable(nil))
	require.True(t, retryable(errors.New("429 Too Many Requests")))
	require.True(t, retryable(errors.New("rate limit reached")))
	require.False(t, retryable(errors.New("invalid request")))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	client.waits = []time.Duration{time.Millisecond}
	return client
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []any{map[string]any{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
		"usage": map[string]any{"prompt_tokens": 5, "completion_tokens": 3, "total_tokens": 8},
	})
}
