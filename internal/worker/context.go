// Package worker builds the per-worker context: the loaded classifier and
// the job-level classification settings, created once per worker task and
// reused sequentially for every document it handles.
package worker

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/textclass/internal/classifier"
	"github.com/kailas-cloud/textclass/internal/domain"
	"github.com/kailas-cloud/textclass/internal/locator"
)

// Config holds the job-level values a worker reads once at startup.
type Config struct {
	ModelPath   string // required
	Lowercase   bool   // lowercase normalization during tokenization
	FeatureName string // metadata entry for predictions; defaults to "label"
}

// Context is the immutable per-worker state. Safe for repeated sequential
// use; not required to support concurrent use.
type Context struct {
	Classifier  classifier.Classifier
	Lowercase   bool
	FeatureName string
}

// NewContext resolves the model against the locally replicated artifact
// paths and loads the classifier. Any failure here is fatal for the
// worker and is wrapped with domain.ErrWorkerInit; it must never be
// treated as a per-record condition.
func NewContext(
	ctx context.Context, cfg Config, replicas []string, load classifier.Loader,
) (*Context, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("%w: model path is required", domain.ErrWorkerInit)
	}

	local, ok := locator.Resolve(cfg.ModelPath, replicas)
	if !ok {
		return nil, fmt.Errorf("%w: no replica of %d matches %q: %w",
			domain.ErrWorkerInit, len(replicas), cfg.ModelPath, domain.ErrModelNotFound)
	}

	clf, err := load(ctx, local)
	if err != nil {
		return nil, fmt.Errorf("%w: load classifier from %s: %w", domain.ErrWorkerInit, local, err)
	}

	featureName := cfg.FeatureName
	if featureName == "" {
		featureName = "label"
	}

	return &Context{
		Classifier:  clf,
		Lowercase:   cfg.Lowercase,
		FeatureName: featureName,
	}, nil
}
