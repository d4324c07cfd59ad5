package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"

	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	ArchiveNone = ""
	ArchiveS3   = "s3"
	ArchiveGCS  = "gcs"
)

type Config struct {
	// HTTP server
	AppHost          string `yaml:"APP_HOST"`
	AppPort          string `yaml:"APP_PORT"`
	AppBodyLimitMB   int    `yaml:"APP_BODY_LIMIT_MB"`
	CORSAllowOrigins string `yaml:"CORS_ALLOW_ORIGINS"`
	UploadsFolder    string `yaml:"UPLOADS_FOLDER"`
	ExportFile       string `yaml:"EXPORT_FILE"`

	// Logging
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`
	LogFile   string `yaml:"LOG_FILE"`

	// Record store
	StoreDriver              string `yaml:"STORE_DRIVER"`
	FirestoreCredentialsFile string `yaml:"FIRESTORE_CREDENTIALS_FILE"`
	FirestoreProjectID       string `yaml:"FIRESTORE_PROJECT_ID"`
	FirestoreCollection      string `yaml:"FIRESTORE_COLLECTION"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	// PDF rendering
	RenderPage        int `yaml:"RENDER_PAGE"`
	RenderDPI         int `yaml:"RENDER_DPI"`
	RenderJPEGQuality int `yaml:"RENDER_JPEG_QUALITY"`

	// Vision model
	ModelProvider       string `yaml:"MODEL_PROVIDER"`
	ModelMaxTokens      int    `yaml:"MODEL_MAX_TOKENS"`
	ModelTimeoutSeconds int    `yaml:"MODEL_TIMEOUT_SECONDS"`
	ModelMaxRetries     int    `yaml:"MODEL_MAX_RETRIES"`
	AnthropicAPIKey     string `yaml:"ANTHROPIC_API_KEY"`
	AnthropicModel      string `yaml:"ANTHROPIC_MODEL"`
	GeminiAPIKey        string `yaml:"GEMINI_API_KEY"`
	GeminiModel         string `yaml:"GEMINI_MODEL"`

	// PDF archive
	ArchiveDriver      string `yaml:"ARCHIVE_DRIVER"`
	AWSS3Bucket        string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region        string `yaml:"AWS_S3_REGION"`
	AWSAccessKey       string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey       string `yaml:"AWS_SECRET_KEY"`
	GCSBucket          string `yaml:"GCS_BUCKET"`
	GCSCredentialsFile string `yaml:"GCS_CREDENTIALS_FILE"`
}

// DefaultConfig returns the configuration used for every key that neither the
// YAML file nor the environment sets.
func DefaultConfig() Config {
	return Config{
		AppHost:             "0.0.0.0",
		AppPort:             "8000",
		AppBodyLimitMB:      64,
		CORSAllowOrigins:    "*",
		UploadsFolder:       "uploads",
		ExportFile:          "invoice_data_export.csv",
		LogLevel:            "info",
		LogFormat:           "json",
		LogFile:             "./logs/app.log",
		StoreDriver:         StoreFirestore,
		FirestoreCollection: "invoices",
		DBSSLMode:           "disable",
		DBTimeZone:          "UTC",
		RenderPage:          1,
		RenderDPI:           300,
		RenderJPEGQuality:   90,
		ModelProvider:       ProviderAnthropic,
		ModelMaxTokens:      1000,
		ModelTimeoutSeconds: 120,
		ModelMaxRetries:     2,
		AnthropicModel:      "claude-3-7-sonnet-20250219",
		GeminiModel:         "gemini-2.0-flash",
	}
}

// LoadConfig reads defaults, then the YAML file at path (skipped when it does
// not exist), then .env and process environment variables named after the
// YAML keys.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("error reading YAML file: %w", err)
		default:
			if err := yaml.Unmarshal(file, &cfg); err != nil {
				return Config{}, fmt.Errorf("error parsing YAML file: %w", err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("yaml")
		raw, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid integer for %s: %w", key, err)
			}
			field.SetInt(int64(n))
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("invalid boolean for %s: %w", key, err)
			}
			field.SetBool(b)
		}
	}
	return nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreFirestore, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.ModelProvider {
	case ProviderAnthropic, ProviderGemini:
	default:
		return fmt.Errorf("unknown MODEL_PROVIDER %q", c.ModelProvider)
	}
	switch c.ArchiveDriver {
	case ArchiveNone, ArchiveS3, ArchiveGCS:
	default:
		return fmt.Errorf("unknown ARCHIVE_DRIVER %q", c.ArchiveDriver)
	}
	if c.RenderDPI <= 0 {
		return fmt.Errorf("RENDER_DPI must be positive, got %d", c.RenderDPI)
	}
	if c.RenderJPEGQuality < 1 || c.RenderJPEGQuality > 100 {
		return fmt.Errorf("RENDER_JPEG_QUALITY must be between 1 and 100, got %d", c.RenderJPEGQuality)
	}
	if c.ModelMaxRetries < 0 {
		return fmt.Errorf("MODEL_MAX_RETRIES cannot be negative")
	}
	return nil
}

func (c Config) Address() string {
	return net.JoinHostPort(c.AppHost, c.AppPort)
}

func (c Config) ModelTimeout() time.Duration {
	return time.Duration(c.ModelTimeoutSeconds) * time.Second
}
