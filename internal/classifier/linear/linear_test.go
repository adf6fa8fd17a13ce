package linear

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/textclass/internal/domain"
)

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}

func TestLoadAndClassify(t *testing.T) {
	path := writeModel(t, `{
		"labels": ["ham", "spam"],
		"bias": [0.1, -0.2],
		"weights": {
			"offer": [-1.0, 2.0],
			"buy":   [-0.5, 1.0]
		}
	}`)

	clf, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	scores, err := clf.Classify(context.Background(), []string{"limited", "offer", "buy", "now"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	// ham: 0.1 - 1.0 - 0.5 = -1.4; spam: -0.2 + 2.0 + 1.0 = 2.8.
	// Unknown tokens contribute nothing.
	if scores[0] != -1.4 || scores[1] != 2.8 {
		t.Fatalf("unexpected scores: %v", scores)
	}

	label, ok := domain.BestLabel(clf.Labels(), scores)
	if !ok || label != "spam" {
		t.Fatalf("expected spam, got %q (ok=%v)", label, ok)
	}
}

func TestLoad_DefaultsBiasAndWeights(t *testing.T) {
	path := writeModel(t, `{"labels": ["a", "b"]}`)

	clf, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	scores, err := clf.Classify(context.Background(), []string{"anything"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if scores[0] != 0 || scores[1] != 0 {
		t.Fatalf("expected zero scores, got %v", scores)
	}
}

func TestLoad_RejectsInconsistentModel(t *testing.T) {
	cases := map[string]string{
		"no labels":       `{"labels": []}`,
		"bias mismatch":   `{"labels": ["a", "b"], "bias": [0.1]}`,
		"weight mismatch": `{"labels": ["a", "b"], "weights": {"x": [1.0]}}`,
		"not json":        `labels: [a]`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeModel(t, content)
			if _, err := Load(context.Background(), path); !errors.Is(err, domain.ErrBadModel) {
				t.Fatalf("expected ErrBadModel, got %v", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
