package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Invoice-Processing-System/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClientComplete(t *testing.T) {
	var got geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"a\":"},{"text":"1}"}]}}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient("g-key", "gemini-test", 500, 5*time.Second).WithBaseURL(server.URL + "/")
	text, err := client.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)

	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "system prompt", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 2)
	require.NotNil(t, got.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/jpeg", got.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, "aGVsbG8=", got.Contents[0].Parts[1].InlineData.Data)
	assert.EqualValues(t, 500, got.GenerationConfig["maxOutputTokens"])
}

func TestGeminiClientNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewGeminiClient("k", "m", 10, time.Second).WithBaseURL(server.URL)
	_, err := client.Complete(context.Background(), testRequest())
	assert.ErrorIs(t, err, domain.ErrEmptyModelResponse)
}

func TestGeminiClientMissingKey(t *testing.T) {
	_, err := NewGeminiClient("", "m", 10, time.Second).Complete(context.Background(), testRequest())
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}
