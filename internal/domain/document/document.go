// Package document holds the corpus record processed by the
// classification stage.
package document

// Document is one corpus record: an opaque external key, an optional text
// body and an extensible metadata mapping created lazily on first write.
// The classification stage never alters the key or the text body; it may
// add or overwrite exactly one metadata entry.
type Document struct {
	key      string
	text     string
	metadata map[string]string
}

// New creates a document with no metadata.
func New(key, text string) *Document {
	return &Document{key: key, text: text}
}

// Reconstruct creates a document from stored fields (corpus hydration).
// The metadata map is taken as-is, not copied.
func Reconstruct(key, text string, metadata map[string]string) *Document {
	return &Document{key: key, text: text, metadata: metadata}
}

// Key returns the external identifier. It is never altered by the stage.
func (d *Document) Key() string { return d.key }

// Text returns the text body; empty means absent.
func (d *Document) Text() string { return d.text }

// Metadata returns the metadata mapping. Nil until the first write.
func (d *Document) Metadata() map[string]string { return d.metadata }

// Feature reads a single metadata entry.
func (d *Document) Feature(name string) (string, bool) {
	v, ok := d.metadata[name]
	return v, ok
}

// SetFeature adds or overwrites one metadata entry, creating the mapping
// on first write.
func (d *Document) SetFeature(name, value string) {
	if d.metadata == nil {
		d.metadata = make(map[string]string, 1)
	}
	d.metadata[name] = value
}

// Clone returns a deep copy, for callers that must not observe in-place
// mutation.
func (d *Document) Clone() *Document {
	c := &Document{key: d.key, text: d.text}
	if d.metadata != nil {
		c.metadata = make(map[string]string, len(d.metadata))
		for k, v := range d.metadata {
			c.metadata[k] = v
		}
	}
	return c
}
