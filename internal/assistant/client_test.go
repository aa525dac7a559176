package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mabdulhai/studyflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	cfg.TimeoutMs = 2000
	return cfg
}

func completionBody(text string) chatResponse {
	var resp chatResponse
	resp.Model = "gpt-4o-mini"
	resp.Choices = []struct {
		Message chatMessage `json:"message"`
	}{
		{Message: chatMessage{Role: "assistant", Content: text}},
	}
	return resp
}

func TestClient_Complete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 3)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "You are a friendly and helpful assistant.", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "assistant", req.Messages[2].Role)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionBody("happy to help"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Complete(context.Background(), []domain.Turn{
		{Role: domain.RoleUser, Text: "hello", Seq: 0},
		{Role: domain.RoleAssistant, Text: "hi", Seq: 1},
	}, "You are a friendly and helpful assistant.")

	require.NoError(t, err)
	assert.Equal(t, "happy to help", resp.Text)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestClient_Complete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50

	client := NewClient(cfg, NoopObserver{})
	_, err := client.Complete(context.Background(), []domain.Turn{
		{Role: domain.RoleUser, Text: "hello"},
	}, "")

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Complete_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	client := NewClient(cfg, NoopObserver{})
	_, err := client.Complete(context.Background(), []domain.Turn{
		{Role: domain.RoleUser, Text: "hello"},
	}, "")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Complete_RetryOnTransientError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		json.NewEncoder(w).Encode(completionBody("ok"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	client := NewClient(cfg, NoopObserver{})
	resp, err := client.Complete(context.Background(), []domain.Turn{
		{Role: domain.RoleUser, Text: "hello"},
	}, "")

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 2, attempts)
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"gpt-4o-mini","choices":[]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0

	client := NewClient(cfg, NoopObserver{})
	_, err := client.Complete(context.Background(), []domain.Turn{
		{Role: domain.RoleUser, Text: "hello"},
	}, "")

	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestClient_Complete_ObserverRecordsFailure(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.MaxRetries = 0

	var events []CallEvent
	client := NewClient(cfg, observerFunc(func(e CallEvent) { events = append(events, e) }))

	_, err := client.Complete(context.Background(), []domain.Turn{
		{Role: domain.RoleUser, Text: "hello"},
	}, "")
	require.Error(t, err)

	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.Equal(t, "UNAVAILABLE", events[0].ErrorCode)
}

type observerFunc func(CallEvent)

func (f observerFunc) OnCallComplete(e CallEvent) { f(e) }

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STUDYFLOW_ASSISTANT_ENABLED", "false")
	t.Setenv("STUDYFLOW_ASSISTANT_ENDPOINT", "http://localhost:8080")
	t.Setenv("STUDYFLOW_ASSISTANT_MODEL", "local-model")
	t.Setenv("STUDYFLOW_ASSISTANT_TIMEOUT_MS", "12000")
	t.Setenv("STUDYFLOW_ASSISTANT_API_KEY", "sk-study")

	cfg := LoadConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "http://localhost:8080", cfg.Endpoint)
	assert.Equal(t, "local-model", cfg.Model)
	assert.Equal(t, 12000, cfg.TimeoutMs)
	assert.Equal(t, "sk-study", cfg.APIKey)
}

func TestLoadConfig_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("STUDYFLOW_ASSISTANT_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, DefaultConfig().TimeoutMs, cfg.TimeoutMs)
}
