package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbridge/smartbridge/core/config"
)

func TestUsableKey(t *testing.T) {
	assert.False(t, UsableKey(""))
	assert.False(t, UsableKey("   "))
	assert.False(t, UsableKey("your_gemini_api_key_here"))
	assert.True(t, UsableKey("AIzaSy-real"))
}

func TestNew(t *testing.T) {
	c, err := New(config.LLMConfig{Provider: "gemini", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "Gemini", c.Provider())
	assert.True(t, c.Configured())

	c, err = New(config.LLMConfig{Provider: "openai"})
	require.NoError(t, err)
	assert.Equal(t, "OpenAI", c.Provider())
	assert.False(t, c.Configured())

	_, err = New(config.LLMConfig{Provider: "claude"})
	assert.Error(t, err)
}

func TestGeminiClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var body geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		assert.Equal(t, "PROMPT", body.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"` + "```sql\\nSELECT 1\\n```" + `"},{"text":"\nOne."}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient(config.LLMConfig{BaseURL: server.URL, APIKey: "test-key", Model: "gemini-2.5-flash", Timeout: time.Second})
	text, err := client.Complete(context.Background(), "PROMPT")
	require.NoError(t, err)
	assert.Equal(t, "```sql\nSELECT 1\n```\nOne.", text)
}

func TestGeminiClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"http error", http.StatusForbidden, `{"error":{"message":"API key not valid"}}`, "status=403"},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, "prompt blocked: SAFETY"},
		{"no candidates", http.StatusOK, `{}`, "empty response candidates"},
		{"bad json", http.StatusOK, `not json`, "decode response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewGeminiClient(config.LLMConfig{BaseURL: server.URL, APIKey: "k"})
			_, err := client.Complete(context.Background(), "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpenAIClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"SELECT 1;"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(config.LLMConfig{BaseURL: server.URL + "/", APIKey: "sk-test", Model: "gemini-2.5-flash"})
	text, err := client.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", text)
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := NewOpenAIClient(config.LLMConfig{BaseURL: server.URL, APIKey: "k"}).Complete(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty chat completion choices")
}
