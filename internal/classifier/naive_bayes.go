package classifier

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// NaiveBayes is a multinomial Naive Bayes classifier over non-negative
// TF-IDF feature weights. Training is a single deterministic pass, so the
// same corpus in the same order always yields an identical model.
type NaiveBayes struct {
	Alpha          float64                  `json:"alpha"`
	ClassLogPrior  map[core.Label]float64   `json:"class_log_prior"`
	FeatureLogProb map[core.Label][]float64 `json:"feature_log_prob"`
}

func newNaiveBayes(cfg Config) *NaiveBayes {
	alpha := cfg.Alpha
	if alpha <= 0 {
		alpha = 1.0
	}
	return &NaiveBayes{Alpha: alpha}
}

// Train fits class priors and per-feature log likelihoods
func (c *NaiveBayes) Train(vecs [][]float64, labels []core.Label) error {
	if err := validateTrainingSet(vecs, labels); err != nil {
		return err
	}

	nFeatures := len(vecs[0])
	featureSums := map[core.Label][]float64{
		core.LabelSpam: make([]float64, nFeatures),
		core.LabelHam:  make([]float64, nFeatures),
	}
	classCounts := map[core.Label]float64{}

	for i, vec := range vecs {
		if len(vec) != nFeatures {
			return &core.DataError{
				Reason: fmt.Sprintf("feature vector %d has length %d, want %d", i, len(vec), nFeatures),
			}
		}
		classCounts[labels[i]]++
		sums := featureSums[labels[i]]
		for j, v := range vec {
			sums[j] += v
		}
	}

	nDocs := float64(len(vecs))
	c.ClassLogPrior = make(map[core.Label]float64, 2)
	c.FeatureLogProb = make(map[core.Label][]float64, 2)
	for _, label := range core.LabelSchema() {
		c.ClassLogPrior[label] = math.Log(classCounts[label] / nDocs)

		sums := featureSums[label]
		var total float64
		for _, v := range sums {
			total += v
		}
		denom := math.Log(total + c.Alpha*float64(nFeatures))
		logProb := make([]float64, nFeatures)
		for j, v := range sums {
			logProb[j] = math.Log(v+c.Alpha) - denom
		}
		c.FeatureLogProb[label] = logProb
	}
	return nil
}

// PredictScore returns the posterior spam probability
func (c *NaiveBayes) PredictScore(vec []float64) float64 {
	spam := c.jointLogLikelihood(core.LabelSpam, vec)
	ham := c.jointLogLikelihood(core.LabelHam, vec)
	// sigmoid of the joint log-likelihood difference
	return 1 / (1 + math.Exp(ham-spam))
}

// Predict returns the label with the higher posterior, breaking the exact
// tie in favor of ham
func (c *NaiveBayes) Predict(vec []float64) core.Label {
	if c.PredictScore(vec) > 0.5 {
		return core.LabelSpam
	}
	return core.LabelHam
}

// Algorithm identifies this classifier variant
func (c *NaiveBayes) Algorithm() string {
	return AlgorithmNaiveBayes
}

// Serialize encodes the fitted model for artifact persistence
func (c *NaiveBayes) Serialize() ([]byte, error) {
	return json.Marshal(c)
}

func (c *NaiveBayes) jointLogLikelihood(label core.Label, vec []float64) float64 {
	ll := c.ClassLogPrior[label]
	logProb := c.FeatureLogProb[label]
	for j, v := range vec {
		if j < len(logProb) && v != 0 {
			ll += v * logProb[j]
		}
	}
	return ll
}

func deserializeNaiveBayes(data []byte) (core.Classifier, error) {
	var c NaiveBayes
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode naive bayes model: %w", err)
	}
	if len(c.ClassLogPrior) == 0 || len(c.FeatureLogProb) == 0 {
		return nil, fmt.Errorf("naive bayes model is missing fitted parameters")
	}
	if len(c.FeatureLogProb[core.LabelSpam]) != len(c.FeatureLogProb[core.LabelHam]) {
		return nil, fmt.Errorf("naive bayes model has inconsistent feature dimensions")
	}
	return &c, nil
}

var _ core.TrainableClassifier = (*NaiveBayes)(nil)
