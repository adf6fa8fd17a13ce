// Package classifier defines the contract between the classification
// stage and pluggable model providers. Provider scoring internals are
// opaque to the rest of the pipeline.
package classifier

import "context"

// Classifier scores a token sequence against a fixed label set. A
// classifier is built once per worker from a local model artifact and
// reused sequentially; it is not required to be safe for concurrent use.
type Classifier interface {
	// Labels returns the label set known to the model, in score order.
	Labels() []string
	// Classify returns one score per label for the given token sequence.
	Classify(ctx context.Context, tokens []string) ([]float64, error)
}

// Loader builds a classifier from a local model artifact path.
type Loader func(ctx context.Context, path string) (Classifier, error)
