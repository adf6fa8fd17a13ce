package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/textclass/internal/domain"
)

// PromSink publishes counter events as a Prometheus counter vector, one
// series per (group, name) pair. Label counters appear as new series on
// first increment.
type PromSink struct {
	counters *prometheus.CounterVec
}

// NewPromSink creates and registers the counter vector.
func NewPromSink(reg prometheus.Registerer) *PromSink {
	s := &PromSink{
		counters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "textclass",
			Name:      "counters_total",
			Help:      "Stage counters by group and name",
		}, []string{"group", "name"}),
	}
	reg.MustRegister(s.counters)
	return s
}

// Inc implements Sink.
func (s *PromSink) Inc(ev domain.CounterEvent) {
	s.counters.WithLabelValues(ev.Group, ev.Name).Inc()
}

// Counter returns the underlying counter for one event, for completion
// reports and tests.
func (s *PromSink) Counter(ev domain.CounterEvent) prometheus.Counter {
	return s.counters.WithLabelValues(ev.Group, ev.Name)
}
