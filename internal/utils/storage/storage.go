// Package storage holds the transient upload directory and the archives the
// original invoice PDFs can be copied to.
package storage

import (
	"context"
	"path"
	"path/filepath"
)

// Archiver copies a local file to object storage.
type Archiver interface {
	Archive(ctx context.Context, objectKey string, localPath string) (ArchivedObject, error)
	Remove(ctx context.Context, objectKey string) error
}

type ArchivedObject struct {
	Key       string
	PublicURL string
}

// ObjectKey is the archive location of an invoice PDF.
func ObjectKey(invoiceNumber, filename string) string {
	return path.Join("invoices", invoiceNumber, filepath.Base(filename))
}
