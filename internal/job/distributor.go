package job

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Distributor makes the model artifact available on every worker before
// any record is processed, and reports the locally available replicas.
// An empty replica list signals non-distributed/local mode.
type Distributor interface {
	Replicate(ctx context.Context, modelPath string) error
	Replicas() []string
}

// FSDistributor replicates the artifact into a worker-local directory.
// The replica keeps the configured path as its suffix so the locator's
// suffix scan finds it. With no directory configured it is a no-op and
// reports no replicas (local mode).
type FSDistributor struct {
	dir      string
	replicas []string
	logger   *zap.Logger
}

// NewFSDistributor creates a distributor rooted at dir; empty dir means
// local mode.
func NewFSDistributor(dir string, logger *zap.Logger) *FSDistributor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FSDistributor{dir: dir, logger: logger}
}

// Replicate copies the artifact read-only into the local directory.
func (d *FSDistributor) Replicate(_ context.Context, modelPath string) error {
	if d.dir == "" {
		return nil
	}

	dst := filepath.Join(d.dir, strings.TrimLeft(modelPath, string(filepath.Separator)))
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("create replica directory: %w", err)
	}

	// Replicas are written read-only; drop any stale copy so a retry
	// can recreate it.
	_ = os.Remove(dst)
	if err := copyFile(modelPath, dst); err != nil {
		return fmt.Errorf("replicate model %s: %w", modelPath, err)
	}

	d.logger.Info("model artifact replicated",
		zap.String("source", modelPath),
		zap.String("replica", dst),
	)
	for _, r := range d.replicas {
		if r == dst {
			return nil
		}
	}
	d.replicas = append(d.replicas, dst)
	return nil
}

// Replicas returns the locally available artifact paths.
func (d *FSDistributor) Replicas() []string { return d.replicas }

func copyFile(src, dst string) error {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(filepath.Clean(dst), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o440)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
