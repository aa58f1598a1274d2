package classifier

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// LogReg is a binary logistic regression classifier trained with full-batch
// gradient descent. Weights start at zero and every pass visits samples in
// input order, so training is deterministic; the seed is still recorded in
// the artifact metadata for algorithms that may use it later.
type LogReg struct {
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	LearningRate float64   `json:"learning_rate"`
	Epochs       int       `json:"epochs"`
	Seed         int64     `json:"seed"`
}

func newLogReg(cfg Config) *LogReg {
	lr := cfg.LearningRate
	if lr <= 0 {
		lr = 0.1
	}
	epochs := cfg.Epochs
	if epochs <= 0 {
		epochs = 200
	}
	return &LogReg{
		LearningRate: lr,
		Epochs:       epochs,
		Seed:         cfg.Seed,
	}
}

// Train fits the weights by minimizing log loss over the full batch
func (c *LogReg) Train(vecs [][]float64, labels []core.Label) error {
	if err := validateTrainingSet(vecs, labels); err != nil {
		return err
	}

	nFeatures := len(vecs[0])
	for i, vec := range vecs {
		if len(vec) != nFeatures {
			return &core.DataError{
				Reason: fmt.Sprintf("feature vector %d has length %d, want %d", i, len(vec), nFeatures),
			}
		}
	}

	targets := make([]float64, len(labels))
	for i, l := range labels {
		if l == core.LabelSpam {
			targets[i] = 1
		}
	}

	c.Weights = make([]float64, nFeatures)
	c.Bias = 0
	n := float64(len(vecs))

	grad := make([]float64, nFeatures)
	for epoch := 0; epoch < c.Epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		var biasGrad float64
		for i, vec := range vecs {
			err := sigmoid(c.decision(vec)) - targets[i]
			for j, v := range vec {
				grad[j] += err * v
			}
			biasGrad += err
		}
		for j := range c.Weights {
			c.Weights[j] -= c.LearningRate * grad[j] / n
		}
		c.Bias -= c.LearningRate * biasGrad / n
	}
	return nil
}

// PredictScore returns the modeled spam probability
func (c *LogReg) PredictScore(vec []float64) float64 {
	return sigmoid(c.decision(vec))
}

// Predict returns the label for a feature vector
func (c *LogReg) Predict(vec []float64) core.Label {
	if c.PredictScore(vec) > 0.5 {
		return core.LabelSpam
	}
	return core.LabelHam
}

// Algorithm identifies this classifier variant
func (c *LogReg) Algorithm() string {
	return AlgorithmLogReg
}

// Serialize encodes the fitted model for artifact persistence
func (c *LogReg) Serialize() ([]byte, error) {
	return json.Marshal(c)
}

func (c *LogReg) decision(vec []float64) float64 {
	score := c.Bias
	for j, v := range vec {
		if j < len(c.Weights) {
			score += c.Weights[j] * v
		}
	}
	return score
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func deserializeLogReg(data []byte) (core.Classifier, error) {
	var c LogReg
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode logistic regression model: %w", err)
	}
	if len(c.Weights) == 0 {
		return nil, fmt.Errorf("logistic regression model is missing fitted weights")
	}
	return &c, nil
}

var _ core.TrainableClassifier = (*LogReg)(nil)
