package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"Invoice-Processing-System/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

type AwsS3 struct {
	client *s3.Client
	bucket string
	region string
}

// NewAwsS3 builds an S3 archive. Static keys are used when both are set,
// otherwise the default AWS credential chain applies.
func NewAwsS3(ctx context.Context, cfg S3Config) (*AwsS3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET is required for the s3 archive")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AwsS3{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

func (a *AwsS3) Archive(ctx context.Context, objectKey string, localPath string) (ArchivedObject, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return ArchivedObject{}, fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}
	defer file.Close()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return ArchivedObject{}, fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}

	return ArchivedObject{Key: objectKey, PublicURL: a.GetPublicLinkKey(objectKey)}, nil
}

func (a *AwsS3) Remove(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *AwsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, escapeKey(objectKey))
}

func escapeKey(objectKey string) string {
	parts := strings.Split(objectKey, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
