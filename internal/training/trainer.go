// Package training runs the offline batch pipeline that turns a labeled
// corpus into a model artifact: normalize, fit the feature space, vectorize,
// train the classifier. It is single-threaded and never runs inside the
// serving process.
package training

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/classifier"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/features"
)

// Result holds the concrete outputs of one training run, ready for
// persistence by the artifact package
type Result struct {
	Metadata   core.ArtifactMetadata
	Space      *features.FeatureSpace
	Classifier core.TrainableClassifier
}

// Artifact wraps the result as the immutable serving bundle
func (r *Result) Artifact() *core.ModelArtifact {
	return &core.ModelArtifact{
		Metadata:   r.Metadata,
		Space:      r.Space,
		Classifier: r.Classifier,
	}
}

// Trainer fits a feature space and a classifier over a labeled corpus
type Trainer struct {
	normalizer    core.Normalizer
	vectorizer    *features.Vectorizer
	classifierCfg classifier.Config
	logger        *zap.Logger
}

// NewTrainer creates a new trainer
func NewTrainer(
	normalizer core.Normalizer,
	vectorizer *features.Vectorizer,
	classifierCfg classifier.Config,
	logger *zap.Logger,
) *Trainer {
	return &Trainer{
		normalizer:    normalizer,
		vectorizer:    vectorizer,
		classifierCfg: classifierCfg,
		logger:        logger,
	}
}

// Train runs the full pipeline and produces a new artifact for the given
// version. The version is assigned by the caller, never derived from content.
func (t *Trainer) Train(ctx context.Context, msgs []core.RawMessage, version string) (*Result, error) {
	if len(msgs) == 0 {
		return nil, &core.DataError{Reason: "corpus is empty"}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	corpus := make([][]string, len(msgs))
	labels := make([]core.Label, len(msgs))
	for i, msg := range msgs {
		corpus[i] = t.normalizer.Normalize(msg.Text)
		labels[i] = msg.Label
	}

	space, err := t.vectorizer.Fit(corpus)
	if err != nil {
		return nil, &core.DataError{Reason: err.Error()}
	}
	t.logger.Info("Fitted feature space",
		zap.Int("vocabulary_size", space.Size()),
		zap.Int("corpus_size", len(msgs)),
		zap.Int("ngram_max", space.NGramMax))

	vecs := make([][]float64, len(corpus))
	for i, tokens := range corpus {
		vecs[i] = space.Transform(tokens)
	}

	clf, err := classifier.New(t.classifierCfg)
	if err != nil {
		return nil, err
	}
	if err := clf.Train(vecs, labels); err != nil {
		return nil, err
	}
	t.logger.Info("Trained classifier",
		zap.String("algorithm", clf.Algorithm()),
		zap.String("version", version))

	return &Result{
		Metadata: core.ArtifactMetadata{
			Version:        version,
			Algorithm:      clf.Algorithm(),
			Seed:           t.classifierCfg.Seed,
			TrainedAt:      time.Now().UTC(),
			LabelSchema:    core.LabelSchema(),
			VocabularySize: space.Size(),
			CorpusSize:     len(msgs),
		},
		Space:      space,
		Classifier: clf,
	}, nil
}
