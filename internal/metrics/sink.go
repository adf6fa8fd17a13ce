// Package metrics exposes the stage counters: a Prometheus sink for
// scraping and an optional Valkey sink for job-level aggregation across
// workers.
package metrics

import "github.com/kailas-cloud/textclass/internal/domain"

// Sink receives counter events. Implementations must be safe for
// concurrent use by multiple workers.
type Sink interface {
	Inc(ev domain.CounterEvent)
}

// Multi fans a counter event out to several sinks.
type Multi []Sink

// Inc implements Sink.
func (m Multi) Inc(ev domain.CounterEvent) {
	for _, s := range m {
		s.Inc(ev)
	}
}
