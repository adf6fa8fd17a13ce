// Package job configures, submits and supervises one classification job:
// parameter validation, model artifact replication, map-only execution
// and best-effort cleanup on failure.
package job

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/textclass/internal/domain"
)

// Params are the required invocation parameters.
type Params struct {
	Input  string // input corpus location
	Output string // output corpus location
	Model  string // model artifact path
}

// Validate reports every missing required parameter at once, wrapped with
// domain.ErrMissingParameter so the caller can map it to usage output.
func (p Params) Validate() error {
	var missing []string
	if p.Input == "" {
		missing = append(missing, "input")
	}
	if p.Output == "" {
		missing = append(missing, "output")
	}
	if p.Model == "" {
		missing = append(missing, "model")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingParameter, strings.Join(missing, ", "))
	}
	return nil
}

// Spec is the configured batch job handed to the execution engine. The
// job is a pure annotation pass: Reducers is always zero.
type Spec struct {
	Name        string
	Input       string
	Output      string
	ModelPath   string
	FeatureName string
	Lowercase   bool
	Workers     int
	Reducers    int // always 0: map-only
}
