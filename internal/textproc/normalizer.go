package textproc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Config holds the fixed normalization configuration. Two processes with the
// same Config always produce identical token streams, which is what keeps
// the training-time and serving-time feature spaces consistent.
type Config struct {
	StopwordLocale string
	Stemming       bool
}

// Normalizer turns raw SMS text into cleaned tokens. It is a pure function
// of its input and configuration: no state, no side effects, no errors.
type Normalizer struct {
	stopwords map[string]struct{}
	stemLang  string
}

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// foldTransform strips diacritics after NFKD decomposition
var foldTransform = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NewNormalizer creates a normalizer for the given configuration
func NewNormalizer(cfg Config) (*Normalizer, error) {
	stopwords, ok := stopwordsByLocale[cfg.StopwordLocale]
	if !ok {
		return nil, fmt.Errorf("unsupported stopword locale: %q", cfg.StopwordLocale)
	}

	stemLang := ""
	if cfg.Stemming {
		stemLang, ok = stemmerLanguages[cfg.StopwordLocale]
		if !ok {
			return nil, fmt.Errorf("no stemmer available for locale: %q", cfg.StopwordLocale)
		}
	}

	return &Normalizer{
		stopwords: stopwords,
		stemLang:  stemLang,
	}, nil
}

// Normalize lowercases, strips punctuation and diacritics, tokenizes, drops
// stop words and optionally stems. It never fails: malformed or empty input
// yields an empty token slice.
func (n *Normalizer) Normalize(text string) []string {
	folded, _, err := transform.String(foldTransform, text)
	if err != nil {
		// Unsupported byte sequences are dropped, not propagated
		folded = text
	}
	lower := strings.ToLower(folded)

	words := tokenPattern.FindAllString(lower, -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		if _, stop := n.stopwords[w]; stop {
			continue
		}
		if n.stemLang != "" {
			if stemmed, err := snowball.Stem(w, n.stemLang, false); err == nil && stemmed != "" {
				w = stemmed
			}
		}
		tokens = append(tokens, w)
	}
	return tokens
}
