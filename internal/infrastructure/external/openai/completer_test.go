package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestCompleter points the adapter at a stub endpoint
func newTestCompleter(t *testing.T, handler http.HandlerFunc, maxTokens int, timeout time.Duration) *Completer {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"

	return &Completer{
		client:      openai.NewClientWithConfig(cfg),
		model:       "gpt-4o-mini",
		temperature: 0.3,
		maxTokens:   maxTokens,
		timeout:     timeout,
		logger:      zap.NewNop(),
		now:         func() time.Time { return time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC) },
	}
}

func textReply(text string) []byte {
	reply, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"role": "assistant", "content": text}},
		},
	})
	return reply
}

func TestCompleteSendsConfiguredMaxTokens(t *testing.T) {
	var seen openai.ChatCompletionRequest
	c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seen))
		w.Header().Set("Content-Type", "application/json")
		w.Write(textReply("Vanakam"))
	}, 512, 0)

	result, err := c.Complete(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, 512, seen.MaxTokens)
	assert.Equal(t, "Vanakam", result.Text)
	assert.Nil(t, result.Call)
}

func TestCompleteAppliesConfiguredTimeout(t *testing.T) {
	c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write(textReply("too late"))
	}, 0, 20*time.Millisecond)

	_, err := c.Complete(context.Background(), "hello")
	assert.Error(t, err)
}
