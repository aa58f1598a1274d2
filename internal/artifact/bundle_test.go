package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/classifier"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/features"
	"github.com/mikey/sms-spam-classifier/internal/textproc"
	"github.com/mikey/sms-spam-classifier/internal/training"
)

var sampleCorpus = []core.RawMessage{
	{Text: "WIN FREE CASH NOW", Label: core.LabelSpam},
	{Text: "let's meet for lunch", Label: core.LabelHam},
	{Text: "free gift just for you", Label: core.LabelSpam},
	{Text: "are you coming tonight", Label: core.LabelHam},
}

// trainResult produces a small fitted bundle for artifact tests
func trainResult(t *testing.T, version string) *training.Result {
	t.Helper()
	normalizer, err := textproc.NewNormalizer(textproc.Config{StopwordLocale: "en"})
	require.NoError(t, err)

	trainer := training.NewTrainer(
		normalizer,
		features.NewVectorizer(1, 1),
		classifier.Config{Algorithm: classifier.AlgorithmNaiveBayes, Alpha: 1.0},
		zap.NewNop(),
	)
	result, err := trainer.Train(context.Background(), sampleCorpus, version)
	require.NoError(t, err)
	return result
}

func saveResult(t *testing.T, dir string, r *training.Result) {
	t.Helper()
	require.NoError(t, Save(dir, r.Metadata, r.Space, r.Classifier))
}

func sampleVectors(t *testing.T, space core.FeatureTransformer) [][]float64 {
	t.Helper()
	normalizer, err := textproc.NewNormalizer(textproc.Config{StopwordLocale: "en"})
	require.NoError(t, err)

	inputs := []string{
		"FREE cash prize!!!",
		"lunch tomorrow?",
		"",
		"win win win",
	}
	vecs := make([][]float64, len(inputs))
	for i, msg := range inputs {
		vecs[i] = space.Transform(normalizer.Normalize(msg))
	}
	return vecs
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	result := trainResult(t, "v1")
	saveResult(t, dir, result)

	art, err := Load(dir, "v1")
	require.NoError(t, err)

	assert.Equal(t, "v1", art.Metadata.Version)
	assert.Equal(t, result.Metadata.Algorithm, art.Metadata.Algorithm)
	assert.Equal(t, result.Space.Size(), art.Space.Size())

	// Identical outputs, byte-for-byte score equality
	for _, vec := range sampleVectors(t, result.Space) {
		assert.Equal(t, result.Classifier.PredictScore(vec), art.Classifier.PredictScore(vec))
		assert.Equal(t, result.Classifier.Predict(vec), art.Classifier.Predict(vec))
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(t.TempDir(), "v1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadRejectsTamperedPayload(t *testing.T) {
	dir := t.TempDir()
	saveResult(t, dir, trainResult(t, "v1"))

	path := filepath.Join(dir, "v1", "classifier.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)/2] ^= 0xff
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = Load(dir, "v1")
	require.Error(t, err)

	var integrityErr *core.ArtifactIntegrityError
	require.True(t, errors.As(err, &integrityErr))
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	saveResult(t, dir, trainResult(t, "v1"))

	// Bundle for v1 presented as v2
	require.NoError(t, os.Rename(filepath.Join(dir, "v1"), filepath.Join(dir, "v2")))

	_, err := Load(dir, "v2")
	require.Error(t, err)

	var integrityErr *core.ArtifactIntegrityError
	require.True(t, errors.As(err, &integrityErr))
	assert.Contains(t, integrityErr.Reason, "v1")
}

func TestLoadRejectsMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	saveResult(t, dir, trainResult(t, "v1"))

	path := filepath.Join(dir, "v1", "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := Load(dir, "v1")
	require.Error(t, err)

	var integrityErr *core.ArtifactIntegrityError
	require.True(t, errors.As(err, &integrityErr))
}

func TestSaveIsByteStable(t *testing.T) {
	result := trainResult(t, "v1")

	dirA := t.TempDir()
	dirB := t.TempDir()
	saveResult(t, dirA, result)
	saveResult(t, dirB, result)

	for _, name := range []string{"manifest.json", "feature_space.json", "classifier.json"} {
		a, err := os.ReadFile(filepath.Join(dirA, "v1", name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, "v1", name))
		require.NoError(t, err)
		assert.Equal(t, a, b, "file %s", name)
	}
}

func TestPackageUnpackRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	result := trainResult(t, "v3")
	saveResult(t, srcDir, result)

	archivePath := filepath.Join(t.TempDir(), ArchiveName)
	require.NoError(t, Package(srcDir, "v3", archivePath))

	destDir := t.TempDir()
	f, err := os.Open(archivePath)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, Unpack(f, filepath.Join(destDir, "v3")))

	art, err := Load(destDir, "v3")
	require.NoError(t, err)
	for _, vec := range sampleVectors(t, result.Space) {
		assert.Equal(t, result.Classifier.PredictScore(vec), art.Classifier.PredictScore(vec))
	}
}

func TestUnpackRejectsGarbage(t *testing.T) {
	err := Unpack(
		// Not a gzip stream
		&garbageReader{},
		t.TempDir(),
	)
	require.Error(t, err)
}

type garbageReader struct{ done bool }

func (g *garbageReader) Read(p []byte) (int, error) {
	if g.done {
		return 0, os.ErrClosed
	}
	g.done = true
	return copy(p, []byte("definitely not a tarball")), nil
}
