package config

import (
	"time"
)

// ServerConfig represents the configuration for the HTTP serving layer
type ServerConfig struct {
	ListenAddress  string
	MaxMessageSize int
}

// ModelConfig represents the configuration for artifact resolution
type ModelConfig struct {
	Dir              string
	Version          string
	SourceURL        string
	FetchTimeout     time.Duration
	FetchMaxAttempts int
}

// NormalizerConfig represents the text normalization configuration
type NormalizerConfig struct {
	StopwordLocale string
	Stemming       bool
}

// FeaturesConfig represents the feature space configuration
type FeaturesConfig struct {
	NGramMax   int
	MinDocFreq int
}

// ClassifierConfig represents the classifier algorithm configuration
type ClassifierConfig struct {
	Algorithm    string
	Alpha        float64
	LearningRate float64
	Epochs       int
	Seed         int64
}

// GetServer returns the server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress:  c.GetString("server.listen_address"),
		MaxMessageSize: c.GetInt("server.max_message_size"),
	}
}

// GetModel returns the model artifact configuration
func (c *Config) GetModel() (ModelConfig, error) {
	timeout, err := c.GetDuration("model.fetch_timeout")
	if err != nil {
		return ModelConfig{}, err
	}
	return ModelConfig{
		Dir:              c.GetString("model.dir"),
		Version:          c.GetString("model.version"),
		SourceURL:        c.GetString("model.source_url"),
		FetchTimeout:     timeout,
		FetchMaxAttempts: c.GetInt("model.fetch_max_attempts"),
	}, nil
}

// GetNormalizer returns the normalizer configuration
func (c *Config) GetNormalizer() NormalizerConfig {
	return NormalizerConfig{
		StopwordLocale: c.GetString("normalizer.stopword_locale"),
		Stemming:       c.GetBool("normalizer.stemming"),
	}
}

// GetFeatures returns the feature space configuration
func (c *Config) GetFeatures() FeaturesConfig {
	return FeaturesConfig{
		NGramMax:   c.GetInt("features.ngram_max"),
		MinDocFreq: c.GetInt("features.min_doc_freq"),
	}
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	return ClassifierConfig{
		Algorithm:    c.GetString("classifier.algorithm"),
		Alpha:        c.GetFloat64("classifier.alpha"),
		LearningRate: c.GetFloat64("classifier.learning_rate"),
		Epochs:       c.GetInt("classifier.epochs"),
		Seed:         c.GetInt64("classifier.seed"),
	}
}
