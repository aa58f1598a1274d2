package core

import (
	"context"
)

// Normalizer defines the interface for turning raw text into clean tokens.
// Implementations must be deterministic and total: any input string yields a
// token slice, never an error.
type Normalizer interface {
	Normalize(text string) []string
}

// FeatureTransformer defines the interface for projecting normalized tokens
// into the fixed numeric feature space the classifier was trained on. The
// vector length equals Size() for every call; unknown tokens contribute zero.
type FeatureTransformer interface {
	Transform(tokens []string) []float64
	Size() int
}

// Classifier defines the scoring interface over a fitted feature space
type Classifier interface {
	// Predict returns the label for a feature vector
	Predict(vec []float64) Label

	// PredictScore returns the spam probability in [0,1] for a feature vector
	PredictScore(vec []float64) float64

	// Algorithm identifies the concrete classifier variant
	Algorithm() string
}

// TrainableClassifier is a Classifier that can be fitted and serialized
type TrainableClassifier interface {
	Classifier

	// Train fits the classifier over feature vectors and their labels
	Train(vecs [][]float64, labels []Label) error

	// Serialize encodes the fitted classifier for artifact persistence
	Serialize() ([]byte, error)
}

// ArtifactSource defines the interface for obtaining the currently loaded
// model artifact
type ArtifactSource interface {
	// Current returns the loaded artifact, or ModelUnavailableError when the
	// store is not in the Loaded state
	Current() (*ModelArtifact, error)
}

// CacheRepository defines the interface for caching classification results
type CacheRepository interface {
	// Get retrieves a cached entry for a message digest
	Get(ctx context.Context, digest string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, digest string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
