package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/classifier"
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/core"
)

// ClassifierFactory creates classifiers based on configuration
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// ClassifierConfig builds the hyperparameter set for the configured algorithm
func (f *ClassifierFactory) ClassifierConfig() classifier.Config {
	cfg := f.cfg.GetClassifier()
	return classifier.Config{
		Algorithm:    cfg.Algorithm,
		Alpha:        cfg.Alpha,
		LearningRate: cfg.LearningRate,
		Epochs:       cfg.Epochs,
		Seed:         cfg.Seed,
	}
}

// CreateTrainableClassifier creates an untrained classifier of the
// configured algorithm
func (f *ClassifierFactory) CreateTrainableClassifier() (core.TrainableClassifier, error) {
	return classifier.New(f.ClassifierConfig())
}
