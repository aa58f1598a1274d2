package artifact

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/metrics"
)

// Fetcher defines the interface for retrieving a versioned artifact bundle
// from a remote source into a local directory
type Fetcher interface {
	Fetch(ctx context.Context, version, destDir string) error
}

// HTTPFetcher downloads a model-release archive over HTTP with a bounded
// timeout and exponential backoff between attempts
type HTTPFetcher struct {
	client      *http.Client
	sourceURL   string
	maxAttempts int
	logger      *zap.Logger
}

// NewHTTPFetcher creates a fetcher for the configured source URL. The URL
// may contain a {version} placeholder; without one it is used as-is.
func NewHTTPFetcher(sourceURL string, timeout time.Duration, maxAttempts int, logger *zap.Logger) *HTTPFetcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &HTTPFetcher{
		client:      &http.Client{Timeout: timeout},
		sourceURL:   sourceURL,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Fetch downloads and unpacks the archive for a version into destDir. The
// unpack happens in a scratch directory that is renamed into place only on
// success, so destDir never holds a partial bundle.
func (f *HTTPFetcher) Fetch(ctx context.Context, version, destDir string) error {
	url := strings.ReplaceAll(f.sourceURL, "{version}", version)
	start := time.Now()

	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return &core.ArtifactFetchError{URL: url, Err: err}
	}

	operation := func() error {
		tmpDir, err := os.MkdirTemp(parent, "fetch-*")
		if err != nil {
			return backoff.Permanent(err)
		}
		defer os.RemoveAll(tmpDir)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status %s", resp.Status)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		if err := Unpack(resp.Body, tmpDir); err != nil {
			// A malformed archive will not fix itself on retry
			return backoff.Permanent(err)
		}

		if err := os.RemoveAll(destDir); err != nil {
			return backoff.Permanent(err)
		}
		return os.Rename(tmpDir, destDir)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(newBackOff(), uint64(f.maxAttempts-1)),
		ctx,
	)
	err := backoff.Retry(operation, policy)
	metrics.RecordFetch(time.Since(start), err)
	if err != nil {
		return &core.ArtifactFetchError{URL: url, Err: err}
	}

	f.logger.Info("Fetched model artifact",
		zap.String("url", url),
		zap.String("version", version),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 0
	return b
}
