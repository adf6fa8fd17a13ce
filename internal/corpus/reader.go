package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/textclass/internal/domain/document"
)

// Reader lists the parquet files of one corpus directory in deterministic
// order so partitions are stable across runs.
type Reader struct {
	dir   string
	files []string
}

// NewReader scans dir for parquet files.
func NewReader(dir string) (*Reader, error) {
	pattern := filepath.Join(dir, "*.parquet")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob parquet files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no parquet files found in %s", dir)
	}
	sort.Strings(files)
	return &Reader{dir: dir, files: files}, nil
}

// Files returns the corpus file paths in sorted order.
func (r *Reader) Files() []string { return r.files }

// ReadFunc is called for each document in file order. Returning false
// stops the scan.
type ReadFunc func(doc *document.Document) bool

// ReadFile streams one corpus file through fn.
func ReadFile(path string, fn ReadFunc) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rows := parquet.NewGenericReader[Record](f)
	defer func() { _ = rows.Close() }()

	buf := make([]Record, 256)
	for {
		n, readErr := rows.Read(buf)
		for i := 0; i < n; i++ {
			doc, err := buf[i].Document()
			if err != nil {
				return fmt.Errorf("read %s: %w", filepath.Base(path), err)
			}
			if !fn(doc) {
				return nil
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read rows from %s: %w", filepath.Base(path), readErr)
		}
	}
}
