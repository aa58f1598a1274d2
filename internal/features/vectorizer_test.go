package features

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCorpus = [][]string{
	{"win", "free", "cash"},
	{"meet", "lunch"},
	{"free", "gift"},
	{"coming", "tonight"},
}

func TestFitAssignsStableSortedIndices(t *testing.T) {
	space, err := NewVectorizer(1, 1).Fit(testCorpus)
	require.NoError(t, err)

	require.Equal(t, 8, space.Size())
	// Indices follow sorted term order regardless of corpus order
	assert.Equal(t, 0, space.Vocabulary["cash"])
	assert.Equal(t, 7, space.Vocabulary["win"])

	again, err := NewVectorizer(1, 1).Fit(testCorpus)
	require.NoError(t, err)
	assert.Equal(t, space.Vocabulary, again.Vocabulary)
	assert.Equal(t, space.IDF, again.IDF)
}

func TestTransformHasConstantLength(t *testing.T) {
	space, err := NewVectorizer(1, 1).Fit(testCorpus)
	require.NoError(t, err)

	inputs := [][]string{
		{"free", "cash"},
		{"completely", "unseen", "tokens"},
		{},
		nil,
		{"win", "win", "win", "win", "win"},
	}
	for _, tokens := range inputs {
		vec := space.Transform(tokens)
		assert.Len(t, vec, space.Size(), "tokens %v", tokens)
	}
}

func TestTransformUnknownTokensContributeZero(t *testing.T) {
	space, err := NewVectorizer(1, 1).Fit(testCorpus)
	require.NoError(t, err)

	vec := space.Transform([]string{"completely", "unseen"})
	for i, v := range vec {
		assert.Zero(t, v, "index %d", i)
	}
}

func TestTransformDoesNotMutateSpace(t *testing.T) {
	space, err := NewVectorizer(1, 1).Fit(testCorpus)
	require.NoError(t, err)

	before, err := json.Marshal(space)
	require.NoError(t, err)

	space.Transform([]string{"free", "brand", "new", "tokens"})
	space.Transform(nil)

	after, err := json.Marshal(space)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTransformIsDeterministic(t *testing.T) {
	space, err := NewVectorizer(2, 1).Fit(testCorpus)
	require.NoError(t, err)

	tokens := []string{"free", "cash", "gift"}
	first := space.Transform(tokens)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, space.Transform(tokens))
	}
}

func TestFitWithNGrams(t *testing.T) {
	space, err := NewVectorizer(2, 1).Fit([][]string{
		{"free", "cash", "now"},
		{"free", "gift"},
	})
	require.NoError(t, err)

	_, hasBigram := space.Vocabulary["free cash"]
	assert.True(t, hasBigram)

	vec := space.Transform([]string{"free", "cash"})
	assert.NotZero(t, vec[space.Vocabulary["free cash"]])
}

func TestFitMinDocFreqPrunesRareTerms(t *testing.T) {
	space, err := NewVectorizer(1, 2).Fit([][]string{
		{"free", "cash"},
		{"free", "gift"},
		{"free", "prize"},
	})
	require.NoError(t, err)

	_, hasFree := space.Vocabulary["free"]
	assert.True(t, hasFree)
	_, hasCash := space.Vocabulary["cash"]
	assert.False(t, hasCash)
}

func TestFitRejectsEmptyCorpus(t *testing.T) {
	_, err := NewVectorizer(1, 1).Fit(nil)
	require.Error(t, err)

	_, err = NewVectorizer(1, 1).Fit([][]string{{}, {}})
	require.Error(t, err)
}

func TestFeatureSpaceJSONRoundTrip(t *testing.T) {
	space, err := NewVectorizer(1, 1).Fit(testCorpus)
	require.NoError(t, err)

	data, err := json.Marshal(space)
	require.NoError(t, err)

	var restored FeatureSpace
	require.NoError(t, json.Unmarshal(data, &restored))
	require.NoError(t, restored.Validate())

	tokens := []string{"win", "free", "unseen"}
	assert.Equal(t, space.Transform(tokens), restored.Transform(tokens))
}

func TestValidateRejectsCorruptSpace(t *testing.T) {
	bad := &FeatureSpace{
		Vocabulary: map[string]int{"free": 0, "cash": 5},
		IDF:        []float64{1, 1},
		NGramMax:   1,
	}
	assert.Error(t, bad.Validate())

	dup := &FeatureSpace{
		Vocabulary: map[string]int{"free": 0, "cash": 0},
		IDF:        []float64{1, 1},
		NGramMax:   1,
	}
	assert.Error(t, dup.Validate())

	empty := &FeatureSpace{NGramMax: 1}
	assert.Error(t, empty.Validate())
}
