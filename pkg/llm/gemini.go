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

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
	httpClient *http.Client
}

type (
	geminiPart struct {
		Text       string            `json:"text,omitempty"`
		InlineData *geminiInlineData `json:"inline_data,omitempty"`
	}

	geminiInlineData struct {
		MimeType string `json:"mime_type"`
		Data     string `json:"data"`
	}

	geminiContent struct {
		Role  string       `json:"role,omitempty"`
		Parts []geminiPart `json:"parts"`
	}

	geminiRequest struct {
		SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
		Contents          []geminiContent        `json:"contents"`
		GenerationConfig  map[string]interface{} `json:"generationConfig"`
	}

	geminiResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

func NewGeminiClient(apiKey, model string, maxTokens int, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    geminiBaseURL,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at another endpoint, used by tests.
func (c *GeminiClient) WithBaseURL(url string) *GeminiClient {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

func (c *GeminiClient) Complete(ctx context.Context, req VisionRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY", domain.ErrMissingAPIKey)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	requestBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{Text: req.Prompt},
					{InlineData: &geminiInlineData{MimeType: req.MediaType, Data: req.ImageBase64}},
				},
			},
		},
		GenerationConfig: map[string]interface{}{
			"temperature":      0.1,
			"maxOutputTokens":  maxTokens,
			"responseMimeType": "application/json",
		},
	}
	if req.System != "" {
		requestBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestJSON))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", &StatusError{Provider: "gemini", StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrEmptyModelResponse
	}

	var text strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", domain.ErrEmptyModelResponse
	}
	return text.String(), nil
}
