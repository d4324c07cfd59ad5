package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"Invoice-Processing-System/domain"
)

// UploadStore writes uploaded files verbatim into one local directory. Files
// are never removed.
type UploadStore struct {
	dir string
}

func NewUploadStore(dir string) *UploadStore {
	return &UploadStore{dir: dir}
}

// Save stores the upload under its base filename, replacing any earlier file
// of the same name, and returns the stored path.
func (s *UploadStore) Save(file *multipart.FileHeader) (string, error) {
	name := filepath.Base(file.Filename)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: invalid filename %q", domain.ErrSaveUpload, file.Filename)
	}

	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSaveUpload, err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSaveUpload, err)
	}
	defer src.Close()

	location := filepath.Join(s.dir, name)
	dst, err := os.Create(location)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSaveUpload, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("%w: %v", domain.ErrSaveUpload, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSaveUpload, err)
	}

	return location, nil
}
