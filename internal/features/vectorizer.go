package features

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FeatureSpace is the fixed vocabulary and IDF weighting fitted once over a
// training corpus. After fitting it is immutable: Transform never changes
// the mapping, and every vector it returns has length Size().
type FeatureSpace struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	NGramMax   int            `json:"ngram_max"`
}

// Size returns the fixed vector length of the feature space
func (s *FeatureSpace) Size() int {
	return len(s.IDF)
}

// Transform projects normalized tokens into the fitted space. Tokens unseen
// at fit time contribute zero; the result is L2-normalized TF-IDF.
func (s *FeatureSpace) Transform(tokens []string) []float64 {
	vec := make([]float64, len(s.IDF))
	if len(tokens) == 0 {
		return vec
	}

	for term, count := range termCounts(tokens, s.NGramMax) {
		if idx, ok := s.Vocabulary[term]; ok {
			vec[idx] = float64(count) * s.IDF[idx]
		}
	}

	var sumSq float64
	for _, v := range vec {
		sumSq += v * v
	}
	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Validate checks structural consistency of a deserialized feature space
func (s *FeatureSpace) Validate() error {
	if len(s.Vocabulary) == 0 {
		return fmt.Errorf("feature space vocabulary is empty")
	}
	if len(s.Vocabulary) != len(s.IDF) {
		return fmt.Errorf("feature space vocabulary size %d does not match idf size %d",
			len(s.Vocabulary), len(s.IDF))
	}
	if s.NGramMax < 1 {
		return fmt.Errorf("feature space ngram_max must be >= 1, got %d", s.NGramMax)
	}
	seen := make(map[int]struct{}, len(s.Vocabulary))
	for term, idx := range s.Vocabulary {
		if idx < 0 || idx >= len(s.IDF) {
			return fmt.Errorf("feature space term %q has out-of-range index %d", term, idx)
		}
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("feature space index %d is assigned to multiple terms", idx)
		}
		seen[idx] = struct{}{}
	}
	return nil
}

// Vectorizer fits a FeatureSpace over a training corpus
type Vectorizer struct {
	NGramMax   int
	MinDocFreq int
}

// NewVectorizer creates a vectorizer with the given n-gram range and
// minimum document frequency
func NewVectorizer(ngramMax, minDocFreq int) *Vectorizer {
	if ngramMax < 1 {
		ngramMax = 1
	}
	if minDocFreq < 1 {
		minDocFreq = 1
	}
	return &Vectorizer{NGramMax: ngramMax, MinDocFreq: minDocFreq}
}

// Fit scans the corpus exactly once, assigns each retained term a stable
// index (sorted term order) and computes smoothed IDF weights.
func (v *Vectorizer) Fit(corpus [][]string) (*FeatureSpace, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("cannot fit feature space over an empty corpus")
	}

	docFreq := make(map[string]int)
	for _, tokens := range corpus {
		for term := range termCounts(tokens, v.NGramMax) {
			docFreq[term]++
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df >= v.MinDocFreq {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("fitted vocabulary is empty")
	}
	sort.Strings(terms)

	space := &FeatureSpace{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
		NGramMax:   v.NGramMax,
	}
	nDocs := float64(len(corpus))
	for i, term := range terms {
		space.Vocabulary[term] = i
		space.IDF[i] = math.Log((1+nDocs)/(1+float64(docFreq[term]))) + 1
	}
	return space, nil
}

// termCounts counts terms and word n-grams up to ngramMax
func termCounts(tokens []string, ngramMax int) map[string]int {
	counts := make(map[string]int, len(tokens))
	for n := 1; n <= ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}
