package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/kailas-cloud/textclass/internal/domain"
)

// ValkeySink aggregates counters into Valkey/Redis so job-level totals
// survive across workers and hosts. Increments are best-effort: a failed
// INCRBY is logged, never propagated into the stage.
type ValkeySink struct {
	client rueidis.Client
	prefix string
	jobID  string
	logger *zap.Logger
}

// ValkeyConfig holds the aggregation sink settings.
type ValkeyConfig struct {
	Addrs     []string
	Password  string
	KeyPrefix string
	JobID     string
	Logger    *zap.Logger
}

// NewValkeySink connects to Valkey/Redis.
func NewValkeySink(cfg ValkeyConfig) (*ValkeySink, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: cfg.Addrs,
		Password:    cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("connect counter store: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ValkeySink{
		client: client,
		prefix: cfg.KeyPrefix,
		jobID:  cfg.JobID,
		logger: logger,
	}, nil
}

// Inc implements Sink.
func (s *ValkeySink) Inc(ev domain.CounterEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := s.key(ev)
	cmd := s.client.B().Incrby().Key(key).Increment(1).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		s.logger.Warn("counter increment failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// Close releases the client.
func (s *ValkeySink) Close() {
	s.client.Close()
}

func (s *ValkeySink) key(ev domain.CounterEvent) string {
	return s.prefix + "counters:" + s.jobID + ":" + ev.Group + ":" + ev.Name
}
