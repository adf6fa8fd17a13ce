// Package linear provides a classifier backed by a local linear model
// artifact: per-label biases plus per-token weight vectors. Scoring is a
// plain weight sum, entirely offline.
package linear

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/textclass/internal/classifier"
	"github.com/kailas-cloud/textclass/internal/domain"
)

// model is the artifact wire format.
type model struct {
	Labels  []string             `json:"labels"`
	Bias    []float64            `json:"bias"`
	Weights map[string][]float64 `json:"weights"`
}

// Classifier scores token sequences by summed per-token weights.
type Classifier struct {
	labels  []string
	bias    []float64
	weights map[string][]float64
}

// Load reads and validates a linear model artifact.
func Load(_ context.Context, path string) (classifier.Classifier, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	var m model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model %s: %w: %w", path, err, domain.ErrBadModel)
	}

	if len(m.Labels) == 0 {
		return nil, fmt.Errorf("model %s has no labels: %w", path, domain.ErrBadModel)
	}
	if m.Bias != nil && len(m.Bias) != len(m.Labels) {
		return nil, fmt.Errorf("model %s: bias length %d does not match %d labels: %w",
			path, len(m.Bias), len(m.Labels), domain.ErrBadModel)
	}
	for tok, w := range m.Weights {
		if len(w) != len(m.Labels) {
			return nil, fmt.Errorf("model %s: token %q has %d weights for %d labels: %w",
				path, tok, len(w), len(m.Labels), domain.ErrBadModel)
		}
	}

	if m.Bias == nil {
		m.Bias = make([]float64, len(m.Labels))
	}
	if m.Weights == nil {
		m.Weights = map[string][]float64{}
	}

	return &Classifier{labels: m.Labels, bias: m.Bias, weights: m.Weights}, nil
}

// Labels returns the label set in score order.
func (c *Classifier) Labels() []string { return c.labels }

// Classify sums per-token weights over the bias vector. Tokens outside the
// model vocabulary contribute nothing.
func (c *Classifier) Classify(_ context.Context, tokens []string) ([]float64, error) {
	scores := make([]float64, len(c.bias))
	copy(scores, c.bias)

	for _, tok := range tokens {
		w, ok := c.weights[tok]
		if !ok {
			continue
		}
		for i, v := range w {
			scores[i] += v
		}
	}
	return scores, nil
}
