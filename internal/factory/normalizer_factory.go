package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/textproc"
)

// NormalizerFactory creates text normalizers based on configuration
type NormalizerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory(cfg *config.Config, logger *zap.Logger) *NormalizerFactory {
	return &NormalizerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateNormalizer creates a normalizer for the configured locale
func (f *NormalizerFactory) CreateNormalizer() (*textproc.Normalizer, error) {
	nc := f.cfg.GetNormalizer()
	normalizer, err := textproc.NewNormalizer(textproc.Config{
		StopwordLocale: nc.StopwordLocale,
		Stemming:       nc.Stemming,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create normalizer: %w", err)
	}
	f.logger.Debug("Created normalizer",
		zap.String("stopword_locale", nc.StopwordLocale),
		zap.Bool("stemming", nc.Stemming))
	return normalizer, nil
}
