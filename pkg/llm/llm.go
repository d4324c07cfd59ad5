// Package llm holds the clients for vision-capable language models.
package llm

import (
	"context"
	"fmt"
)

// VisionModel sends one image with instructions to a model and returns the
// raw text of its answer.
type VisionModel interface {
	Complete(ctx context.Context, req VisionRequest) (string, error)
}

type VisionRequest struct {
	System      string
	Prompt      string
	ImageBase64 string
	MediaType   string
	MaxTokens   int
}

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.StatusCode, e.Body)
}
