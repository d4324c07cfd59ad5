package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"Invoice-Processing-System/domain"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSConfig struct {
	Bucket          string
	CredentialsFile string
}

type GCSArchive struct {
	client *gcs.Client
	bucket string
}

// NewGCSArchive builds a Cloud Storage archive. Without a credentials file the
// application default credentials are used.
func NewGCSArchive(ctx context.Context, cfg GCSConfig) (*GCSArchive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET is required for the gcs archive")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSArchive{client: client, bucket: cfg.Bucket}, nil
}

func (g *GCSArchive) Archive(ctx context.Context, objectKey string, localPath string) (ArchivedObject, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return ArchivedObject{}, fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}
	defer file.Close()

	wc := g.client.Bucket(g.bucket).Object(objectKey).NewWriter(ctx)
	wc.ContentType = "application/pdf"

	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		return ArchivedObject{}, fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}
	if err := wc.Close(); err != nil {
		return ArchivedObject{}, fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}

	return ArchivedObject{
		Key:       objectKey,
		PublicURL: fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, escapeKey(objectKey)),
	}, nil
}

func (g *GCSArchive) Remove(ctx context.Context, objectKey string) error {
	return g.client.Bucket(g.bucket).Object(objectKey).Delete(ctx)
}

func (g *GCSArchive) Close() error {
	return g.client.Close()
}
