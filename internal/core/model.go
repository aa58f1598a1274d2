package core

import (
	"time"
)

// Label is a classification label for an SMS message
type Label string

const (
	// LabelSpam marks a message as spam
	LabelSpam Label = "spam"
	// LabelHam marks a message as legitimate
	LabelHam Label = "ham"
)

// ParseLabel converts a string into a Label
func ParseLabel(s string) (Label, bool) {
	switch Label(s) {
	case LabelSpam:
		return LabelSpam, true
	case LabelHam:
		return LabelHam, true
	default:
		return "", false
	}
}

// LabelSchema is the fixed label set every artifact must carry
func LabelSchema() []Label {
	return []Label{LabelHam, LabelSpam}
}

// RawMessage is a labeled training message
type RawMessage struct {
	Text  string
	Label Label
}

// ClassificationResult represents the outcome of classifying one message
type ClassificationResult struct {
	Label        Label
	Score        float64 // spam probability in [0,1]
	Confidence   float64 // probability of the chosen label
	ModelVersion string
	ProcessingID string
	ClassifiedAt time.Time
}

// ArtifactMetadata describes a trained model artifact
type ArtifactMetadata struct {
	Version        string    `json:"version"`
	Algorithm      string    `json:"algorithm"`
	Seed           int64     `json:"seed"`
	TrainedAt      time.Time `json:"trained_at"`
	LabelSchema    []Label   `json:"label_schema"`
	VocabularySize int       `json:"vocabulary_size"`
	CorpusSize     int       `json:"corpus_size"`
}

// ModelArtifact is the immutable bundle of a fitted feature space and a
// trained classifier. It is never mutated after creation; reloading swaps
// in a whole new artifact.
type ModelArtifact struct {
	Metadata   ArtifactMetadata
	Space      FeatureTransformer
	Classifier Classifier
}

// CacheEntry is a cached classification result keyed by message digest
type CacheEntry struct {
	MessageDigest string
	Label         Label
	Score         float64
	ModelVersion  string
	LastSeen      time.Time
	ExpiresAt     time.Time
}
