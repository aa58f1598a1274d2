package factory

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/artifact"
	"github.com/mikey/sms-spam-classifier/internal/config"
)

// StoreFactory creates the artifact store based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateArtifactStore creates the artifact store, wiring in a remote fetcher
// when a source URL is configured
func (f *StoreFactory) CreateArtifactStore() (*artifact.Store, error) {
	mc, err := f.cfg.GetModel()
	if err != nil {
		return nil, fmt.Errorf("invalid model configuration: %w", err)
	}
	if err := os.MkdirAll(mc.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	var fetcher artifact.Fetcher
	if mc.SourceURL != "" {
		fetcher = artifact.NewHTTPFetcher(mc.SourceURL, mc.FetchTimeout, mc.FetchMaxAttempts, f.logger)
	} else {
		f.logger.Warn("No model source url configured; only local artifacts can be resolved")
	}

	return artifact.NewStore(mc.Dir, fetcher, f.logger), nil
}

// GetModelVersion returns the configured target artifact version
func (f *StoreFactory) GetModelVersion() string {
	return f.cfg.GetString("model.version")
}
