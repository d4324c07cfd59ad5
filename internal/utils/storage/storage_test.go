package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"Invoice-Processing-System/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestUploadStoreSaveVerbatim(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewUploadStore(dir)
	content := []byte("%PDF-1.4 raw bytes \x00\x01")

	location, err := store.Save(fileHeader(t, "invoice_001.pdf", content))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invoice_001.pdf"), location)

	got, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestUploadStoreOverwritesSameName(t *testing.T) {
	store := NewUploadStore(t.TempDir())
	_, err := store.Save(fileHeader(t, "a.pdf", []byte("first")))
	require.NoError(t, err)
	location, err := store.Save(fileHeader(t, "a.pdf", []byte("second")))
	require.NoError(t, err)

	got, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestUploadStoreWriteFailure(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewUploadStore(blocker).Save(fileHeader(t, "a.pdf", []byte("x")))
	assert.ErrorIs(t, err, domain.ErrSaveUpload)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "invoices/INV-1/invoice.pdf", ObjectKey("INV-1", "invoice.pdf"))
	assert.Equal(t, "invoices/INV-1/invoice.pdf", ObjectKey("INV-1", "../../invoice.pdf"))
}

func TestS3PublicLink(t *testing.T) {
	a := &AwsS3{bucket: "bucket", region: "eu-central-1"}
	assert.Equal(t, "https://bucket.s3.eu-central-1.amazonaws.com/invoices/INV%201/a.pdf",
		a.GetPublicLinkKey("invoices/INV 1/a.pdf"))
}
