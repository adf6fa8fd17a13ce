package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/textclass/internal/domain/document"
)

// Writer appends documents to one output part file.
type Writer struct {
	file *os.File
	rows *parquet.GenericWriter[Record]
}

// NewWriter creates the part file, creating parent directories as needed.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	return &Writer{
		file: f,
		rows: parquet.NewGenericWriter[Record](f),
	}, nil
}

// Write appends one document.
func (w *Writer) Write(doc *document.Document) error {
	rec, err := FromDocument(doc)
	if err != nil {
		return err
	}
	if _, err := w.rows.Write([]Record{rec}); err != nil {
		return fmt.Errorf("write row %q: %w", doc.Key(), err)
	}
	return nil
}

// Close flushes the parquet footer and closes the file.
func (w *Writer) Close() error {
	if err := w.rows.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close part file: %w", err)
	}
	return nil
}
