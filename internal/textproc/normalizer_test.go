package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T, cfg Config) *Normalizer {
	t.Helper()
	n, err := NewNormalizer(cfg)
	require.NoError(t, err)
	return n
}

func TestNormalizeLowercasesAndStripsPunctuation(t *testing.T) {
	n := newTestNormalizer(t, Config{StopwordLocale: "en"})

	tokens := n.Normalize("WIN Free-Cash, NOW!!!")
	assert.Equal(t, []string{"win", "free", "cash", "now"}, tokens)
}

func TestNormalizeDropsStopwords(t *testing.T) {
	n := newTestNormalizer(t, Config{StopwordLocale: "en"})

	tokens := n.Normalize("free gift just for you")
	assert.Equal(t, []string{"free", "gift"}, tokens)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	n := newTestNormalizer(t, Config{StopwordLocale: "en"})

	input := "Congratulations! You've WON a £1000 prize 🎉 call 0800-123-456"
	first := n.Normalize(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, n.Normalize(input))
	}
}

func TestNormalizeNeverFails(t *testing.T) {
	n := newTestNormalizer(t, Config{StopwordLocale: "en"})

	cases := map[string][]string{
		"":            nil,
		"   ":         nil,
		"!!! ### ???": nil,
		"🎉🎉🎉":         nil,
		"\xff\xfe":    nil,
	}
	for input, want := range cases {
		assert.Equal(t, want, sliceOrNil(n.Normalize(input)), "input %q", input)
	}
}

func TestNormalizeStripsDiacritics(t *testing.T) {
	n := newTestNormalizer(t, Config{StopwordLocale: "en"})

	tokens := n.Normalize("café naïve")
	assert.Equal(t, []string{"cafe", "naive"}, tokens)
}

func TestNormalizeDropsSingleCharacterTokens(t *testing.T) {
	n := newTestNormalizer(t, Config{StopwordLocale: "en"})

	tokens := n.Normalize("let's go b c")
	assert.Equal(t, []string{"let", "go"}, tokens)
}

func TestNormalizeWithStemming(t *testing.T) {
	n := newTestNormalizer(t, Config{StopwordLocale: "en", Stemming: true})

	tokens := n.Normalize("winning prizes running")
	assert.Equal(t, []string{"win", "prize", "run"}, tokens)
}

func TestNormalizeSpanishLocale(t *testing.T) {
	n := newTestNormalizer(t, Config{StopwordLocale: "es"})

	tokens := n.Normalize("gana un premio gratis ya")
	assert.Equal(t, []string{"gana", "premio", "gratis"}, tokens)
}

func TestNewNormalizerRejectsUnknownLocale(t *testing.T) {
	_, err := NewNormalizer(Config{StopwordLocale: "xx"})
	require.Error(t, err)

	_, err = NewNormalizer(Config{StopwordLocale: ""})
	require.Error(t, err)
}

func sliceOrNil(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
