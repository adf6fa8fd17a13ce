package job

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kailas-cloud/textclass/internal/classifier/linear"
	"github.com/kailas-cloud/textclass/internal/corpus"
	"github.com/kailas-cloud/textclass/internal/domain"
	"github.com/kailas-cloud/textclass/internal/domain/document"
)

// lockedSink records counter events from concurrent workers.
type lockedSink struct {
	mu     sync.Mutex
	counts map[string]int
}

func newLockedSink() *lockedSink {
	return &lockedSink{counts: map[string]int{}}
}

func (s *lockedSink) Inc(ev domain.CounterEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[ev.Name]++
}

func (s *lockedSink) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[name]
}

func writeInputFile(t *testing.T, dir, name string, docs []*document.Document) {
	t.Helper()
	w, err := corpus.NewWriter(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	for _, doc := range docs {
		if err := w.Write(doc); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func writeSpamModel(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "model.json")
	content := `{
		"labels": ["ham", "spam"],
		"weights": {
			"offer": [-1.0, 2.0],
			"hello": [1.0, -1.0]
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}

func readOutput(t *testing.T, dir string) map[string]*document.Document {
	t.Helper()
	r, err := corpus.NewReader(dir)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	out := map[string]*document.Document{}
	for _, f := range r.Files() {
		err := corpus.ReadFile(f, func(doc *document.Document) bool {
			out[doc.Key()] = doc
			return true
		})
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
	}
	return out
}

func TestLocalEngine_AnnotatesCorpus(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "in")
	output := filepath.Join(tmp, "out")

	writeInputFile(t, input, "part-00000.parquet", []*document.Document{
		document.New("doc-1", "limited offer buy now"),
		document.New("doc-2", ""),
	})
	writeInputFile(t, input, "part-00001.parquet", []*document.Document{
		document.New("doc-3", "hello old friend"),
		document.New("doc-4", "x"),
	})

	sink := newLockedSink()
	engine := NewLocalEngine(linear.Load, NewFSDistributor("", nil), sink, nil)

	err := engine.Submit(context.Background(), Spec{
		Name:        "test",
		Input:       input,
		Output:      output,
		ModelPath:   writeSpamModel(t, tmp),
		FeatureName: "label",
		Workers:     2,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	docs := readOutput(t, output)
	if len(docs) != 4 {
		t.Fatalf("expected 4 documents out, got %d", len(docs))
	}

	if v, _ := docs["doc-1"].Feature("label"); v != "spam" {
		t.Fatalf("doc-1: expected spam, got %q", v)
	}
	if v, _ := docs["doc-3"].Feature("label"); v != "ham" {
		t.Fatalf("doc-3: expected ham, got %q", v)
	}
	for _, key := range []string{"doc-2", "doc-4"} {
		if docs[key].Metadata() != nil {
			t.Fatalf("%s: missing-text document mutated: %v", key, docs[key].Metadata())
		}
	}

	if got := sink.count(domain.CounterMissingText); got != 2 {
		t.Fatalf("expected 2 missing-text increments, got %d", got)
	}
	if got := sink.count("spam"); got != 1 {
		t.Fatalf("expected 1 spam increment, got %d", got)
	}
	if got := sink.count("ham"); got != 1 {
		t.Fatalf("expected 1 ham increment, got %d", got)
	}
	if got := sink.count(domain.CounterException); got != 0 {
		t.Fatalf("expected no exceptions, got %d", got)
	}
}

func TestLocalEngine_WorkerInitFailureAbortsJob(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "in")
	writeInputFile(t, input, "part-00000.parquet", []*document.Document{
		document.New("doc-1", "some text"),
	})

	engine := NewLocalEngine(linear.Load, NewFSDistributor("", nil), newLockedSink(), nil)

	err := engine.Submit(context.Background(), Spec{
		Input:     input,
		Output:    filepath.Join(tmp, "out"),
		ModelPath: filepath.Join(tmp, "absent.json"),
		Workers:   1,
	})
	if !errors.Is(err, domain.ErrWorkerInit) {
		t.Fatalf("expected ErrWorkerInit, got %v", err)
	}
}

func TestPartition(t *testing.T) {
	files := []string{"a", "b", "c", "d", "e"}

	parts := partition(files, 2)
	if len(parts) != 2 {
		t.Fatalf("expected 2 partitions, got %d", len(parts))
	}
	var total int
	for _, p := range parts {
		if len(p) == 0 {
			t.Fatal("empty partition")
		}
		total += len(p)
	}
	if total != len(files) {
		t.Fatalf("files lost in partitioning: %d of %d", total, len(files))
	}

	// More workers than files never yields empty partitions.
	parts = partition(files[:2], 8)
	if len(parts) != 2 {
		t.Fatalf("expected partitions capped at file count, got %d", len(parts))
	}

	parts = partition(files, 0)
	if len(parts) != 1 {
		t.Fatalf("expected single partition for n=0, got %d", len(parts))
	}
}

func TestFSDistributor_ReplicaMatchesSuffix(t *testing.T) {
	tmp := t.TempDir()
	modelDir := filepath.Join(tmp, "models")
	if err := os.MkdirAll(modelDir, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	model := filepath.Join(modelDir, "m.json")
	if err := os.WriteFile(model, []byte(`{"labels":["a"]}`), 0o600); err != nil {
		t.Fatalf("write model: %v", err)
	}

	d := NewFSDistributor(filepath.Join(tmp, "cache"), nil)
	if err := d.Replicate(context.Background(), model); err != nil {
		t.Fatalf("replicate: %v", err)
	}

	replicas := d.Replicas()
	if len(replicas) != 1 {
		t.Fatalf("expected 1 replica, got %v", replicas)
	}
	if replicas[0] == model {
		t.Fatal("replica must be a local copy, not the source")
	}
	if filepath.Base(replicas[0]) != "m.json" {
		t.Fatalf("replica does not keep the artifact name: %q", replicas[0])
	}
	if _, err := os.Stat(replicas[0]); err != nil {
		t.Fatalf("replica not on disk: %v", err)
	}

	// Replication is idempotent for retries.
	if err := d.Replicate(context.Background(), model); err != nil {
		t.Fatalf("second replicate: %v", err)
	}
}

func TestFSDistributor_LocalMode(t *testing.T) {
	d := NewFSDistributor("", nil)
	if err := d.Replicate(context.Background(), "/models/m.json"); err != nil {
		t.Fatalf("local mode replicate: %v", err)
	}
	if got := d.Replicas(); len(got) != 0 {
		t.Fatalf("local mode must report no replicas, got %v", got)
	}
}
