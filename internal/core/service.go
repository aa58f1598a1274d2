package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/metrics"
)

// ClassifierService is the core service for scoring inbound messages
type ClassifierService struct {
	source       ArtifactSource
	normalizer   Normalizer
	cache        CacheRepository
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
}

// NewClassifierService creates a new classifier service
func NewClassifierService(
	source ArtifactSource,
	normalizer Normalizer,
	cache CacheRepository,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
) *ClassifierService {
	return &ClassifierService{
		source:       source,
		normalizer:   normalizer,
		cache:        cache,
		logger:       logger,
		cacheEnabled: cacheEnabled,
		cacheTTL:     cacheTTL,
	}
}

// Classify scores a single message against the currently loaded artifact.
// The artifact is read-only during serving, so concurrent calls need no
// locking. An empty message still yields a valid result.
func (s *ClassifierService) Classify(ctx context.Context, message string) (*ClassificationResult, error) {
	art, err := s.source.Current()
	if err != nil {
		return nil, err
	}

	digest := messageDigest(art.Metadata.Version, message)

	if s.cacheEnabled && s.cache != nil {
		if entry, err := s.cache.Get(ctx, digest); err == nil {
			s.logger.Debug("Cache hit for message", zap.String("digest", digest))
			metrics.RecordCacheHit()
			return &ClassificationResult{
				Label:        entry.Label,
				Score:        entry.Score,
				Confidence:   labelConfidence(entry.Label, entry.Score),
				ModelVersion: entry.ModelVersion,
				ProcessingID: uuid.NewString(),
				ClassifiedAt: time.Now(),
			}, nil
		}
		metrics.RecordCacheMiss()
	}

	start := time.Now()
	tokens := s.normalizer.Normalize(message)
	vec := art.Space.Transform(tokens)
	score := art.Classifier.PredictScore(vec)
	label := art.Classifier.Predict(vec)

	result := &ClassificationResult{
		Label:        label,
		Score:        score,
		Confidence:   labelConfidence(label, score),
		ModelVersion: art.Metadata.Version,
		ProcessingID: uuid.NewString(),
		ClassifiedAt: time.Now(),
	}
	metrics.RecordClassification(string(label), time.Since(start))

	s.logger.Debug("Classified message",
		zap.String("label", string(label)),
		zap.Float64("score", score),
		zap.Int("token_count", len(tokens)),
		zap.String("model_version", art.Metadata.Version))

	if s.cacheEnabled && s.cache != nil {
		entry := &CacheEntry{
			MessageDigest: digest,
			Label:         result.Label,
			Score:         result.Score,
			ModelVersion:  result.ModelVersion,
			LastSeen:      time.Now(),
			ExpiresAt:     time.Now().Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	return result, nil
}

// labelConfidence maps a spam probability to confidence in the chosen label
func labelConfidence(label Label, score float64) float64 {
	if label == LabelSpam {
		return score
	}
	return 1 - score
}

// messageDigest keys cache entries by model version and message content, so
// entries written for an older artifact can never answer for a newer one.
func messageDigest(version, message string) string {
	sum := sha256.Sum256([]byte(version + "\x00" + message))
	return hex.EncodeToString(sum[:])
}
