// Package relay drains the audit outbox into Kafka.
//
// The outbox store guarantees that every audit event committed alongside a
// business write eventually reaches the audit topic; the relay provides the
// "eventually". Rows are published oldest-first and deleted only after the
// produce is acknowledged, so a crash between publish and delete can at worst
// duplicate an event — consumers dedupe on the event ID.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	outbox "inklusi/pkg/platform/audit/store/postgres"
)

const (
	defaultBatchSize = 100
	defaultInterval  = 2 * time.Second
)

// Relay polls the outbox and publishes pending events.
type Relay struct {
	store    *outbox.Store
	client   *kgo.Client
	topic    string
	logger   *slog.Logger
	batch    int
	interval time.Duration
}

// Option configures the Relay.
type Option func(*Relay)

// WithBatchSize overrides how many rows are drained per poll.
func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batch = n
		}
	}
}

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

// New connects a Kafka producer and ensures the audit topic exists.
func New(brokers []string, topic string, store *outbox.Store, logger *slog.Logger, opts ...Option) (*Relay, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}

	// Topic bootstrap is idempotent; an existing topic is not an error.
	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopic(context.Background(), 3, 1, nil, topic)
	if err == nil {
		err = resp.Err
	}
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		logger.Warn("audit topic bootstrap failed, assuming it exists", "topic", topic, "error", err)
	}

	r := &Relay{
		store:    store,
		client:   client,
		topic:    topic,
		logger:   logger,
		batch:    defaultBatchSize,
		interval: defaultInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run polls until ctx is cancelled. Publish failures are logged and retried
// on the next tick; the outbox keeps the rows.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer r.client.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				r.logger.ErrorContext(ctx, "audit relay drain failed", "error", err)
			}
		}
	}
}

func (r *Relay) drainOnce(ctx context.Context) error {
	rows, err := r.store.Pending(ctx, r.batch)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	records := make([]*kgo.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, &kgo.Record{
			Topic: r.topic,
			Key:   []byte(row.Category),
			Value: row.Payload,
		})
	}

	if err := r.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("produce audit batch: %w", err)
	}

	published := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		published = append(published, row.ID)
	}
	if err := r.store.MarkPublished(ctx, published); err != nil {
		return fmt.Errorf("ack audit batch: %w", err)
	}

	r.logger.DebugContext(ctx, "audit batch relayed", "count", len(rows))
	return nil
}
