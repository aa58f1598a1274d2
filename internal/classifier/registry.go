// Package classifier provides the pluggable scoring algorithms behind the
// core.Classifier contract. Concrete variants are selected by name, both when
// training and when deserializing a persisted artifact, so the artifact
// format never hard-codes one algorithm's type.
package classifier

import (
	"fmt"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

const (
	// AlgorithmNaiveBayes is multinomial Naive Bayes over TF-IDF weights
	AlgorithmNaiveBayes = "naive_bayes"
	// AlgorithmLogReg is binary logistic regression
	AlgorithmLogReg = "logreg"
)

// Config carries the hyperparameters for trainable classifiers
type Config struct {
	Algorithm    string
	Alpha        float64 // Laplace smoothing (naive_bayes)
	LearningRate float64 // gradient step size (logreg)
	Epochs       int     // full-batch passes (logreg)
	Seed         int64
}

type maker func(cfg Config) core.TrainableClassifier

type deserializer func(data []byte) (core.Classifier, error)

var makers = map[string]maker{
	AlgorithmNaiveBayes: func(cfg Config) core.TrainableClassifier { return newNaiveBayes(cfg) },
	AlgorithmLogReg:     func(cfg Config) core.TrainableClassifier { return newLogReg(cfg) },
}

var deserializers = map[string]deserializer{
	AlgorithmNaiveBayes: deserializeNaiveBayes,
	AlgorithmLogReg:     deserializeLogReg,
}

// New creates an untrained classifier for the configured algorithm
func New(cfg Config) (core.TrainableClassifier, error) {
	mk, ok := makers[cfg.Algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported classifier algorithm: %q", cfg.Algorithm)
	}
	return mk(cfg), nil
}

// Deserialize decodes a persisted classifier of the named algorithm
func Deserialize(algorithm string, data []byte) (core.Classifier, error) {
	de, ok := deserializers[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported classifier algorithm: %q", algorithm)
	}
	return de(data)
}

// validateTrainingSet enforces the shared training preconditions: non-empty,
// aligned features and labels, and both classes present.
func validateTrainingSet(vecs [][]float64, labels []core.Label) error {
	if len(vecs) == 0 || len(labels) == 0 {
		return &core.DataError{Reason: "training set is empty"}
	}
	if len(vecs) != len(labels) {
		return &core.DataError{
			Reason: fmt.Sprintf("feature count %d does not match label count %d", len(vecs), len(labels)),
		}
	}

	var spam, ham int
	for _, l := range labels {
		switch l {
		case core.LabelSpam:
			spam++
		case core.LabelHam:
			ham++
		default:
			return &core.DataError{Reason: fmt.Sprintf("unknown label %q", l)}
		}
	}
	if spam == 0 || ham == 0 {
		return &core.DataError{
			Reason: fmt.Sprintf("both classes must be present (spam=%d, ham=%d)", spam, ham),
		}
	}
	return nil
}
