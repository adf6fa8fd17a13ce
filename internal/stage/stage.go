// Package stage implements the per-document classification step: text
// validation, tokenization, scoring, label assignment and counter
// bookkeeping. Per-document failures never abort the job; passthrough
// with a counter is the uniform recovery strategy.
package stage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/textclass/internal/domain"
	"github.com/kailas-cloud/textclass/internal/domain/document"
	"github.com/kailas-cloud/textclass/internal/metrics"
	"github.com/kailas-cloud/textclass/internal/tokenize"
	"github.com/kailas-cloud/textclass/internal/worker"
)

// Kind discriminates the terminal states of the per-document state machine.
type Kind int

const (
	// Labeled means a prediction was written into the document metadata.
	Labeled Kind = iota
	// MissingText means the text body was absent or shorter than 2 characters.
	MissingText
	// Failed means classification raised an error; the document passed
	// through unchanged.
	Failed
)

// Outcome is the explicit result of processing one document. Exactly one
// counter event corresponds to each outcome.
type Outcome struct {
	Kind  Kind
	Label string // set iff Kind == Labeled
	Err   error  // set iff Kind == Failed
}

// Counter returns the counter event for this outcome.
func (o Outcome) Counter() domain.CounterEvent {
	switch o.Kind {
	case MissingText:
		return domain.StageCounter(domain.CounterMissingText)
	case Failed:
		return domain.StageCounter(domain.CounterException)
	default:
		return domain.StageCounter(o.Label)
	}
}

// Stage classifies documents using one worker's context. Documents are
// processed sequentially; the stage holds no mutable state of its own.
type Stage struct {
	wctx   *worker.Context
	sink   metrics.Sink
	logger *zap.Logger
}

// New creates a stage bound to a worker context.
func New(wctx *worker.Context, sink metrics.Sink, logger *zap.Logger) *Stage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stage{wctx: wctx, sink: sink, logger: logger}
}

// Process runs the state machine on one document, mutating it in place on
// the Labeled path only (set/overwrite of the configured feature name).
// The key and text body are never altered. The matching counter is
// incremented before returning.
func (s *Stage) Process(ctx context.Context, doc *document.Document) Outcome {
	out := s.classify(ctx, doc)
	s.sink.Inc(out.Counter())

	if out.Kind == Failed {
		s.logger.Warn("classification failed",
			zap.String("key", doc.Key()),
			zap.Error(out.Err),
		)
	}
	return out
}

func (s *Stage) classify(ctx context.Context, doc *document.Document) Outcome {
	if len(doc.Text()) < 2 {
		return Outcome{Kind: MissingText}
	}

	tokens := tokenize.Tokens(doc.Text(), s.wctx.Lowercase)

	scores, err := s.wctx.Classifier.Classify(ctx, tokens)
	if err != nil {
		return Outcome{Kind: Failed, Err: err}
	}

	label, ok := domain.BestLabel(s.wctx.Classifier.Labels(), scores)
	if !ok {
		return Outcome{Kind: Failed, Err: fmt.Errorf(
			"%w: %d scores for %d labels",
			domain.ErrProviderError, len(scores), len(s.wctx.Classifier.Labels()),
		)}
	}

	doc.SetFeature(s.wctx.FeatureName, label)
	return Outcome{Kind: Labeled, Label: label}
}
