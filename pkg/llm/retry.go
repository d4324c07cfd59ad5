package llm

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 30 * time.Second
)

type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func DefaultRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:     maxRetries,
		InitialBackoff: defaultInitialBackoff,
		MaxBackoff:     defaultMaxBackoff,
	}
}

type retryingModel struct {
	next   VisionModel
	config RetryConfig
	logger logrus.FieldLogger
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry retries transport failures and throttling or server-side statuses
// with exponential backoff. Other errors are returned immediately.
func WithRetry(next VisionModel, config RetryConfig, logger logrus.FieldLogger) VisionModel {
	if config.MaxRetries <= 0 {
		return next
	}
	return &retryingModel{
		next:   next,
		config: config,
		logger: logger,
		sleep:  sleepContext,
	}
}

func (m *retryingModel) Complete(ctx context.Context, req VisionRequest) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= m.config.MaxRetries; attempt++ {
		text, err := m.next.Complete(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt == m.config.MaxRetries || !shouldRetry(ctx, err) {
			break
		}

		backoff := calculateBackoff(attempt, m.config)
		m.logger.WithFields(logrus.Fields{
			"module":  "llm",
			"attempt": attempt + 1,
			"backoff": backoff.String(),
		}).Warnf("model request failed, retrying: %v", err)

		if err := m.sleep(ctx, backoff); err != nil {
			return "", err
		}
	}
	return "", lastErr
}

func shouldRetry(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	// http.Client.Do reports dial, TLS and timeout failures as *url.Error.
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func calculateBackoff(attempt int, config RetryConfig) time.Duration {
	backoff := float64(config.InitialBackoff) * math.Pow(2, float64(attempt))
	if backoff > float64(config.MaxBackoff) {
		backoff = float64(config.MaxBackoff)
	}
	return time.Duration(backoff)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
