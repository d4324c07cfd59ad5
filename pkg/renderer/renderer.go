// Package renderer converts one page of a PDF document to a JPEG image.
package renderer

import (
	"context"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"Invoice-Processing-System/domain"

	"github.com/gen2brain/go-fitz"
)

type Config struct {
	// Page is the 0-based page index to render. Negative values count from the
	// end, -1 being the last page.
	Page    int
	DPI     float64
	Quality int
}

type Renderer struct {
	config Config
}

func NewRenderer(config Config) *Renderer {
	return &Renderer{config: config}
}

// Render writes the configured page of the PDF at pdfPath next to it, with the
// extension replaced by .jpg, and returns the image path.
func (r *Renderer) Render(ctx context.Context, pdfPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	page := r.config.Page
	if page < 0 {
		page += pageCount
	}
	if page < 0 || page >= pageCount {
		return "", fmt.Errorf("%w: %w: page %d requested, document has %d page(s)",
			domain.ErrRenderFailed, domain.ErrPageOutOfRange, r.config.Page, pageCount)
	}

	img, err := doc.ImageDPI(page, r.config.DPI)
	if err != nil {
		return "", fmt.Errorf("%w: page %d: %v", domain.ErrRenderFailed, page, err)
	}

	imagePath := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".jpg"
	out, err := os.Create(imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: r.config.Quality}); err != nil {
		out.Close()
		return "", fmt.Errorf("%w: encoding page %d: %v", domain.ErrRenderFailed, page, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	return imagePath, nil
}
