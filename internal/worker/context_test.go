package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/textclass/internal/classifier"
	"github.com/kailas-cloud/textclass/internal/domain"
)

type staticClassifier struct{}

func (staticClassifier) Labels() []string { return []string{"a"} }
func (staticClassifier) Classify(_ context.Context, _ []string) ([]float64, error) {
	return []float64{1}, nil
}

func loadOK(_ context.Context, _ string) (classifier.Classifier, error) {
	return staticClassifier{}, nil
}

func TestNewContext_Defaults(t *testing.T) {
	wctx, err := NewContext(context.Background(), Config{ModelPath: "/models/m.json"}, nil, loadOK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wctx.FeatureName != "label" {
		t.Fatalf("expected default feature name, got %q", wctx.FeatureName)
	}
	if wctx.Lowercase {
		t.Fatal("lowercase must default to false")
	}
	if wctx.Classifier == nil {
		t.Fatal("classifier not set")
	}
}

func TestNewContext_UsesMatchingReplica(t *testing.T) {
	var loaded string
	load := func(_ context.Context, path string) (classifier.Classifier, error) {
		loaded = path
		return staticClassifier{}, nil
	}

	replicas := []string{"/cache/other.bin", "/cache/models/m.json"}
	if _, err := NewContext(context.Background(), Config{ModelPath: "models/m.json"}, replicas, load); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != "/cache/models/m.json" {
		t.Fatalf("expected replica path, loaded %q", loaded)
	}
}

func TestNewContext_MissingModelPathIsFatal(t *testing.T) {
	_, err := NewContext(context.Background(), Config{}, nil, loadOK)
	if !errors.Is(err, domain.ErrWorkerInit) {
		t.Fatalf("expected ErrWorkerInit, got %v", err)
	}
}

func TestNewContext_UnresolvableReplicaIsFatal(t *testing.T) {
	replicas := []string{"/cache/unrelated.bin"}
	_, err := NewContext(context.Background(), Config{ModelPath: "models/m.json"}, replicas, loadOK)
	if !errors.Is(err, domain.ErrWorkerInit) {
		t.Fatalf("expected ErrWorkerInit, got %v", err)
	}
	if !errors.Is(err, domain.ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound cause, got %v", err)
	}
}

func TestNewContext_LoaderFailureIsFatal(t *testing.T) {
	loadErr := errors.New("corrupt artifact")
	load := func(_ context.Context, _ string) (classifier.Classifier, error) {
		return nil, loadErr
	}

	_, err := NewContext(context.Background(), Config{ModelPath: "/m.json"}, nil, load)
	if !errors.Is(err, domain.ErrWorkerInit) {
		t.Fatalf("expected ErrWorkerInit, got %v", err)
	}
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected wrapped loader error, got %v", err)
	}
}
