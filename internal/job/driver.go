package job

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/kailas-cloud/textclass/internal/config"
)

// Driver validates invocation parameters, configures the map-only job,
// requests model replication and submits synchronously.
type Driver struct {
	cfg    config.Config
	engine Engine
	dist   Distributor
	logger *zap.Logger
}

// NewDriver creates a driver.
func NewDriver(cfg config.Config, engine Engine, dist Distributor, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{cfg: cfg, engine: engine, dist: dist, logger: logger}
}

// Run executes one job. Missing parameters fail before anything is
// configured or submitted. Any error escaping replication or submission
// triggers best-effort recursive cleanup of the output location, so a
// retry never sees partial output, and is returned to the caller.
func (d *Driver) Run(ctx context.Context, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	spec := Spec{
		Name:        "textclass : " + p.Input,
		Input:       p.Input,
		Output:      p.Output,
		ModelPath:   p.Model,
		FeatureName: d.cfg.Job.FeatureName,
		Lowercase:   d.cfg.Job.Lowercase,
		Workers:     d.cfg.Job.Workers,
		Reducers:    0,
	}

	if err := d.dist.Replicate(ctx, p.Model); err != nil {
		return fmt.Errorf("replicate model artifact: %w", err)
	}

	if err := d.engine.Submit(ctx, spec); err != nil {
		d.cleanup(spec.Output)
		d.logger.Error("job failed",
			zap.String("job", spec.Name),
			zap.Error(err),
		)
		return fmt.Errorf("run job: %w", err)
	}

	return nil
}

// cleanup removes the output location recursively. Best-effort and
// idempotent: a missing output is not an error.
func (d *Driver) cleanup(output string) {
	if err := os.RemoveAll(output); err != nil {
		d.logger.Warn("output cleanup failed",
			zap.String("output", output),
			zap.Error(err),
		)
		return
	}
	d.logger.Info("partial output removed", zap.String("output", output))
}
