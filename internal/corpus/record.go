// Package corpus reads and writes the corpus record container: parquet
// files of (key, document) rows.
package corpus

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/textclass/internal/domain/document"
)

// Record is the parquet row format. Metadata travels as a JSON object
// column; nested parquet maps with nullable values are not worth the
// reader complexity for an opaque string mapping.
type Record struct {
	Key      string `parquet:"key"`
	Text     string `parquet:"text"`
	Metadata string `parquet:"metadata"`
}

// Document hydrates the domain document from a row.
func (r Record) Document() (*document.Document, error) {
	var meta map[string]string
	if r.Metadata != "" {
		if err := json.Unmarshal([]byte(r.Metadata), &meta); err != nil {
			return nil, fmt.Errorf("decode metadata for %q: %w", r.Key, err)
		}
	}
	return document.Reconstruct(r.Key, r.Text, meta), nil
}

// FromDocument converts a document back into a row.
func FromDocument(doc *document.Document) (Record, error) {
	rec := Record{Key: doc.Key(), Text: doc.Text()}
	if meta := doc.Metadata(); len(meta) > 0 {
		data, err := json.Marshal(meta)
		if err != nil {
			return Record{}, fmt.Errorf("encode metadata for %q: %w", doc.Key(), err)
		}
		rec.Metadata = string(data)
	}
	return rec, nil
}
