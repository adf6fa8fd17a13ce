package job

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/textclass/internal/classifier"
	"github.com/kailas-cloud/textclass/internal/corpus"
	"github.com/kailas-cloud/textclass/internal/domain/document"
	"github.com/kailas-cloud/textclass/internal/metrics"
	"github.com/kailas-cloud/textclass/internal/stage"
	"github.com/kailas-cloud/textclass/internal/worker"
)

// Engine runs a configured job to completion. The distributed engine is an
// external collaborator; LocalEngine is the bundled in-process
// implementation.
type Engine interface {
	Submit(ctx context.Context, spec Spec) error
}

// LocalEngine partitions the input corpus files across N workers in one
// process. Each worker builds its context once, then processes its
// partition sequentially and writes one output part file. There is no
// shared mutable state between workers; the counter sink is the only
// shared collaborator and must be concurrency-safe.
type LocalEngine struct {
	load   classifier.Loader
	dist   Distributor
	sink   metrics.Sink
	logger *zap.Logger
}

// NewLocalEngine creates the in-process engine.
func NewLocalEngine(
	load classifier.Loader, dist Distributor, sink metrics.Sink, logger *zap.Logger,
) *LocalEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalEngine{load: load, dist: dist, sink: sink, logger: logger}
}

// Submit runs the job synchronously. A worker initialization failure
// aborts the whole job; per-document failures are counted by the stage
// and never surface here.
func (e *LocalEngine) Submit(ctx context.Context, spec Spec) error {
	reader, err := corpus.NewReader(spec.Input)
	if err != nil {
		return fmt.Errorf("open input corpus: %w", err)
	}

	parts := partition(reader.Files(), spec.Workers)
	e.logger.Info("job started",
		zap.String("job", spec.Name),
		zap.Int("input_files", len(reader.Files())),
		zap.Int("workers", len(parts)),
	)

	start := time.Now()
	var processed, labeled atomic.Int64
	errs := make([]error, len(parts))

	var wg sync.WaitGroup
	for i, files := range parts {
		wg.Add(1)
		go func(id int, files []string) {
			defer wg.Done()
			errs[id] = e.runWorker(ctx, spec, id, files, &processed, &labeled)
		}(i, files)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}

	e.logger.Info("job finished",
		zap.String("job", spec.Name),
		zap.Int64("documents", processed.Load()),
		zap.Int64("labeled", labeled.Load()),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return nil
}

// runWorker is one worker task: context built once, documents strictly
// sequential, output in its own part file.
func (e *LocalEngine) runWorker(
	ctx context.Context,
	spec Spec,
	id int,
	files []string,
	processed, labeled *atomic.Int64,
) error {
	wctx, err := worker.NewContext(ctx, worker.Config{
		ModelPath:   spec.ModelPath,
		Lowercase:   spec.Lowercase,
		FeatureName: spec.FeatureName,
	}, e.dist.Replicas(), e.load)
	if err != nil {
		return fmt.Errorf("worker %d: %w", id, err)
	}

	out, err := corpus.NewWriter(filepath.Join(spec.Output, fmt.Sprintf("part-%05d.parquet", id)))
	if err != nil {
		return fmt.Errorf("worker %d: %w", id, err)
	}

	wlog := e.logger.With(zap.Int("worker", id))
	st := stage.New(wctx, e.sink, wlog)

	for _, file := range files {
		var writeErr error
		err := corpus.ReadFile(file, func(doc *document.Document) bool {
			select {
			case <-ctx.Done():
				writeErr = ctx.Err()
				return false
			default:
			}

			res := st.Process(ctx, doc)
			if res.Kind == stage.Labeled {
				labeled.Add(1)
			}
			processed.Add(1)

			if err := out.Write(doc); err != nil {
				writeErr = err
				return false
			}
			return true
		})
		if err == nil {
			err = writeErr
		}
		if err != nil {
			_ = out.Close()
			return fmt.Errorf("worker %d: %w", id, err)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("worker %d: %w", id, err)
	}
	return nil
}

// partition spreads files round-robin over at most n workers, never
// producing an empty partition.
func partition(files []string, n int) [][]string {
	if n <= 0 {
		n = 1
	}
	if n > len(files) {
		n = len(files)
	}
	parts := make([][]string, n)
	for i, f := range files {
		parts[i%n] = append(parts[i%n], f)
	}
	return parts
}
