package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedutinova/xpb3parser/internal/common"
)

func TestAnthropicCompleter_Request(t *testing.T) {
	var seen map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ak-test", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&seen))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest",
"content":[{"type":"text","text":"{\"nota_numero\": \"7\"}"}],"stop_reason":"end_turn",
"usage":{"input_tokens":90,"output_tokens":10}}`))
	}))
	defer srv.Close()

	c := NewAnthropicCompleter("ak-test", "claude-3-5-haiku-latest", option.WithBaseURL(srv.URL))
	out, err := c.Complete(context.Background(), SystemPrompt, "prompt do usuario")
	require.NoError(t, err)

	assert.Equal(t, `{"nota_numero": "7"}`, out.Content)
	assert.Equal(t, 100, out.TokensUsed)
	assert.Equal(t, "claude-3-5-haiku-latest", seen["model"])
	assert.Equal(t, float64(0), seen["temperature"])

	system, ok := seen["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	assert.Equal(t, SystemPrompt, system[0].(map[string]any)["text"])

	msgs, ok := seen["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
}

func TestAnthropicCompleter_ErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
	}))
	defer srv.Close()

	c := NewAnthropicCompleter("ak-test", "claude-3-5-haiku-latest", option.WithBaseURL(srv.URL))
	_, err := c.Complete(context.Background(), SystemPrompt, "p")

	require.Error(t, err)
	assert.True(t, common.IsModelCall(err))
	assert.Equal(t, int32(1), hits.Load())
}
