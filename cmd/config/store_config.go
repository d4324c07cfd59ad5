package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"Invoice-Processing-System/internal/utils"
	"Invoice-Processing-System/internal/utils/storage"
	"Invoice-Processing-System/pkg/invoice"
	"Invoice-Processing-System/pkg/llm"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

type closer func() error

func noopCloser() error { return nil }

// NewRepository builds the record store selected by STORE_DRIVER.
func NewRepository(ctx context.Context, cfg utils.Config) (invoice.InvoiceRepository, closer, error) {
	switch cfg.StoreDriver {
	case utils.StoreMemory:
		return invoice.NewMemoryRepository(), noopCloser, nil

	case utils.StorePostgres:
		db, err := ConnectDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return invoice.NewInvoiceRepository(db), sqlDB.Close, nil

	case utils.StoreFirestore:
		client, err := newFirestoreClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return invoice.NewFirestoreRepository(client, cfg.FirestoreCollection), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

func newFirestoreClient(ctx context.Context, cfg utils.Config) (*firestore.Client, error) {
	var opts []option.ClientOption
	switch {
	case cfg.FirestoreCredentialsFile != "":
		if _, err := os.Stat(cfg.FirestoreCredentialsFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("firestore credentials file not found at %s", cfg.FirestoreCredentialsFile)
			}
			return nil, err
		}
		opts = append(opts, option.WithCredentialsFile(cfg.FirestoreCredentialsFile))
	case os.Getenv("FIRESTORE_EMULATOR_HOST") == "":
		return nil, fmt.Errorf("FIRESTORE_CREDENTIALS_FILE is required for the firestore store")
	}

	projectID := cfg.FirestoreProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}

// NewArchiver builds the PDF archive selected by ARCHIVE_DRIVER, or nil when
// archiving is off.
func NewArchiver(ctx context.Context, cfg utils.Config) (storage.Archiver, closer, error) {
	switch cfg.ArchiveDriver {
	case utils.ArchiveNone:
		return nil, noopCloser, nil

	case utils.ArchiveS3:
		s3, err := storage.NewAwsS3(ctx, storage.S3Config{
			Bucket:    cfg.AWSS3Bucket,
			Region:    cfg.AWSS3Region,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return s3, noopCloser, nil

	case utils.ArchiveGCS:
		gcs, err := storage.NewGCSArchive(ctx, storage.GCSConfig{
			Bucket:          cfg.GCSBucket,
			CredentialsFile: cfg.GCSCredentialsFile,
		})
		if err != nil {
			return nil, nil, err
		}
		return gcs, gcs.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown ARCHIVE_DRIVER %q", cfg.ArchiveDriver)
}

// NewVisionModel builds the model client selected by MODEL_PROVIDER wrapped
// in the retry policy.
func NewVisionModel(cfg utils.Config, logger logrus.FieldLogger) (llm.VisionModel, error) {
	var (
		model  llm.VisionModel
		apiKey string
	)
	switch cfg.ModelProvider {
	case utils.ProviderAnthropic:
		apiKey = cfg.AnthropicAPIKey
		model = llm.NewAnthropicClient(apiKey, cfg.AnthropicModel, cfg.ModelMaxTokens, cfg.ModelTimeout())
	case utils.ProviderGemini:
		apiKey = cfg.GeminiAPIKey
		model = llm.NewGeminiClient(apiKey, cfg.GeminiModel, cfg.ModelMaxTokens, cfg.ModelTimeout())
	default:
		return nil, fmt.Errorf("unknown MODEL_PROVIDER %q", cfg.ModelProvider)
	}

	if apiKey == "" {
		logger.WithField("provider", cfg.ModelProvider).Warn("model API key not set, uploads will fail")
	}

	return llm.WithRetry(model, llm.DefaultRetryConfig(cfg.ModelMaxRetries), logger), nil
}
