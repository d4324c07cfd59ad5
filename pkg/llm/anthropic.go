package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"Invoice-Processing-System/domain"
)

const (
	anthropicURL     = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
)

type AnthropicClient struct {
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
	httpClient *http.Client
}

type (
	anthropicRequest struct {
		Model     string             `json:"model"`
		MaxTokens int                `json:"max_tokens"`
		System    string             `json:"system,omitempty"`
		Messages  []anthropicMessage `json:"messages"`
	}

	anthropicMessage struct {
		Role    string             `json:"role"`
		Content []anthropicContent `json:"content"`
	}

	anthropicContent struct {
		Type   string           `json:"type"`
		Text   string           `json:"text,omitempty"`
		Source *anthropicSource `json:"source,omitempty"`
	}

	anthropicSource struct {
		Type      string `json:"type"`
		MediaType string `json:"media_type"`
		Data      string `json:"data"`
	}

	anthropicResponse struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
	}
)

// NewAnthropicClient creates a Messages API client. An empty apiKey is only
// reported when the first request is made.
func NewAnthropicClient(apiKey, model string, maxTokens int, timeout time.Duration) *AnthropicClient {
	return &AnthropicClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    anthropicURL,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at another endpoint, used by tests.
func (c *AnthropicClient) WithBaseURL(url string) *AnthropicClient {
	c.baseURL = url
	return c
}

func (c *AnthropicClient) Complete(ctx context.Context, req VisionRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY", domain.ErrMissingAPIKey)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages: []anthropicMessage{
			{
				Role: "user",
				Content: []anthropicContent{
					{Type: "text", Text: req.Prompt},
					{
						Type: "image",
						Source: &anthropicSource{
							Type:      "base64",
							MediaType: req.MediaType,
							Data:      req.ImageBase64,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", &StatusError{Provider: "anthropic", StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode anthropic response: %w", err)
	}

	var text strings.Builder
	for _, part := range parsed.Content {
		if part.Type == "text" {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", domain.ErrEmptyModelResponse
	}
	return text.String(), nil
}
