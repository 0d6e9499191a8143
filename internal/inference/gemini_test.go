package inference

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient(t *testing.T) {
	_, err := NewGeminiClient(ClientConfig{})
	assert.Error(t, err)

	client, err := NewGeminiClient(ClientConfig{APIKey: "test-key"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestGeminiClientGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"parts": [{"text": "{\"amount\": "}, {"text": "50}"}], "role": "model"}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 5}
		}`))
	}))
	defer server.Close()

	client, err := NewGeminiClient(ClientConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "gemini-1.5-flash", GenerateRequest{Prompt: "classify this"})
	require.NoError(t, err)

	// Multi-part candidates are concatenated.
	assert.Equal(t, `{"amount": 50}`, text)
	assert.Equal(t, "/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	contents, ok := gotBody["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)
	assert.Contains(t, gotBody, "generationConfig")
}

func TestGeminiClientGenerateAudio(t *testing.T) {
	audio := []byte{0x01, 0x02, 0x03}
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "ok"}]}}]}`))
	}))
	defer server.Close()

	client, err := NewGeminiClient(ClientConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "gemini-1.5-flash", GenerateRequest{
		Prompt:    "classify the recording",
		Audio:     audio,
		AudioMIME: "audio/ogg",
	})
	require.NoError(t, err)

	contents := gotBody["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 2)

	inline := parts[1].(map[string]any)["inline_data"].(map[string]any)
	assert.Equal(t, "audio/ogg", inline["mime_type"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(audio), inline["data"])
}

func TestGeminiClientGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: "status 500"},
		{name: "quota error", status: http.StatusTooManyRequests, body: "quota", wantErr: "status 429"},
		{name: "empty candidates", status: http.StatusOK, body: `{"candidates": []}`, wantErr: "no content"},
		{name: "invalid json", status: http.StatusOK, body: `<html>`, wantErr: "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewGeminiClient(ClientConfig{APIKey: "test-key", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = client.Generate(context.Background(), "gemini-1.5-flash", GenerateRequest{Prompt: "hi"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
