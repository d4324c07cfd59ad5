// Package extraction turns a rendered invoice page into an invoice record
// using a vision model.
package extraction

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"Invoice-Processing-System/domain"
	"Invoice-Processing-System/pkg/llm"

	"github.com/go-playground/validator/v10"
)

type Extractor struct {
	model    llm.VisionModel
	validate *validator.Validate
	now      func() time.Time
}

func NewExtractor(model llm.VisionModel, validate *validator.Validate) *Extractor {
	return &Extractor{
		model:    model,
		validate: validate,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for Upload_Timestamp.
func (e *Extractor) WithClock(now func() time.Time) *Extractor {
	e.now = now
	return e
}

// Extract sends the image to the model once and parses the answer. The provenance
// fields are always set from the request, never from the model.
func (e *Extractor) Extract(ctx context.Context, imagePath string, filename string) (domain.Invoice, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: error encoding image: %v", domain.ErrExtractionFailed, err)
	}

	text, err := e.model.Complete(ctx, llm.VisionRequest{
		System:      systemPrompt,
		Prompt:      userPrompt,
		ImageBase64: base64.StdEncoding.EncodeToString(imageData),
		MediaType:   mediaTypeFor(imagePath),
	})
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	invoice, err := Parse(e.validate, text)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err)
	}

	invoice.OriginalFilename = filename
	invoice.UploadTimestamp = e.now().UTC().Format(time.RFC3339Nano)
	return invoice, nil
}

func mediaTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
