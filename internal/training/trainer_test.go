package training

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/classifier"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/features"
	"github.com/mikey/sms-spam-classifier/internal/textproc"
)

var sampleCorpus = []core.RawMessage{
	{Text: "WIN FREE CASH NOW", Label: core.LabelSpam},
	{Text: "let's meet for lunch", Label: core.LabelHam},
	{Text: "free gift just for you", Label: core.LabelSpam},
	{Text: "are you coming tonight", Label: core.LabelHam},
}

func newTestTrainer(t *testing.T, cfg classifier.Config) *Trainer {
	t.Helper()
	normalizer, err := textproc.NewNormalizer(textproc.Config{StopwordLocale: "en"})
	require.NoError(t, err)
	return NewTrainer(normalizer, features.NewVectorizer(1, 1), cfg, zap.NewNop())
}

func TestTrainEndToEnd(t *testing.T) {
	trainer := newTestTrainer(t, classifier.Config{Algorithm: classifier.AlgorithmNaiveBayes, Alpha: 1.0})

	result, err := trainer.Train(context.Background(), sampleCorpus, "v1")
	require.NoError(t, err)

	assert.Equal(t, "v1", result.Metadata.Version)
	assert.Equal(t, classifier.AlgorithmNaiveBayes, result.Metadata.Algorithm)
	assert.Equal(t, 4, result.Metadata.CorpusSize)
	assert.Equal(t, result.Space.Size(), result.Metadata.VocabularySize)
	assert.ElementsMatch(t, core.LabelSchema(), result.Metadata.LabelSchema)

	normalizer, err := textproc.NewNormalizer(textproc.Config{StopwordLocale: "en"})
	require.NoError(t, err)

	spamVec := result.Space.Transform(normalizer.Normalize("FREE cash prize!!!"))
	spamScore := result.Classifier.PredictScore(spamVec)
	assert.Equal(t, core.LabelSpam, result.Classifier.Predict(spamVec))
	assert.Greater(t, spamScore, 0.5)

	hamVec := result.Space.Transform(normalizer.Normalize("lunch tomorrow?"))
	assert.Equal(t, core.LabelHam, result.Classifier.Predict(hamVec))
}

func TestTrainSingleClassCorpusFails(t *testing.T) {
	trainer := newTestTrainer(t, classifier.Config{Algorithm: classifier.AlgorithmNaiveBayes, Alpha: 1.0})

	_, err := trainer.Train(context.Background(), []core.RawMessage{
		{Text: "free cash", Label: core.LabelSpam},
		{Text: "free prize", Label: core.LabelSpam},
	}, "v1")
	require.Error(t, err)

	var dataErr *core.DataError
	require.True(t, errors.As(err, &dataErr))
}

func TestTrainEmptyCorpusFails(t *testing.T) {
	trainer := newTestTrainer(t, classifier.Config{Algorithm: classifier.AlgorithmNaiveBayes})

	_, err := trainer.Train(context.Background(), nil, "v1")
	require.Error(t, err)

	var dataErr *core.DataError
	require.True(t, errors.As(err, &dataErr))
}

func TestTrainIsDeterministic(t *testing.T) {
	cfg := classifier.Config{Algorithm: classifier.AlgorithmNaiveBayes, Alpha: 1.0, Seed: 42}

	first, err := newTestTrainer(t, cfg).Train(context.Background(), sampleCorpus, "v1")
	require.NoError(t, err)
	second, err := newTestTrainer(t, cfg).Train(context.Background(), sampleCorpus, "v1")
	require.NoError(t, err)

	firstBytes, err := first.Classifier.Serialize()
	require.NoError(t, err)
	secondBytes, err := second.Classifier.Serialize()
	require.NoError(t, err)
	assert.Equal(t, firstBytes, secondBytes)
	assert.Equal(t, first.Space.Vocabulary, second.Space.Vocabulary)
}

func TestTrainRecordsSeed(t *testing.T) {
	trainer := newTestTrainer(t, classifier.Config{
		Algorithm:    classifier.AlgorithmLogReg,
		LearningRate: 0.5,
		Epochs:       100,
		Seed:         1234,
	})

	result, err := trainer.Train(context.Background(), sampleCorpus, "v2")
	require.NoError(t, err)
	assert.EqualValues(t, 1234, result.Metadata.Seed)
}
