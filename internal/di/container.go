package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/adapters/httpapi"
	"github.com/mikey/sms-spam-classifier/internal/artifact"
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/factory"
	"github.com/mikey/sms-spam-classifier/internal/logging"
	"github.com/mikey/sms-spam-classifier/internal/textproc"
	"github.com/mikey/sms-spam-classifier/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewNormalizerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register normalizer
	if err := container.Provide(func(f *factory.NormalizerFactory) (*textproc.Normalizer, error) {
		return f.CreateNormalizer()
	}); err != nil {
		return nil, err
	}

	// Register artifact store
	if err := container.Provide(func(f *factory.StoreFactory) (*artifact.Store, error) {
		return f.CreateArtifactStore()
	}); err != nil {
		return nil, err
	}

	// Register cache repository
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register cache TTL and enabled flag
	if err := container.Provide(func(f *factory.CacheFactory) (time.Duration, error) {
		return f.GetCacheTTL()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) bool {
		return f.IsCacheEnabled()
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register classifier service
	if err := container.Provide(func(
		store *artifact.Store,
		normalizer *textproc.Normalizer,
		cache core.CacheRepository,
		logger *zap.Logger,
		cacheEnabled bool,
		cacheTTL time.Duration,
	) *core.ClassifierService {
		return core.NewClassifierService(store, normalizer, cache, logger, cacheEnabled, cacheTTL)
	}); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(func(
		service *core.ClassifierService,
		store *artifact.Store,
		textProcessor *utils.TextProcessor,
		logger *zap.Logger,
		cfg *config.Config,
	) *httpapi.Server {
		server := cfg.GetServer()
		return httpapi.NewServer(service, store, textProcessor, logger, server.ListenAddress, server.MaxMessageSize)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
