package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	audit "inklusi/pkg/platform/audit"
	txcontext "inklusi/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events land in the audit_outbox table — inside the caller's transaction
// when one is present in context — and the relay publishes them to Kafka.
// Kafka is the source of truth for downstream consumers; the outbox row is
// deleted after a successful publish.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// outboxPayload is the JSON structure published to Kafka. Field names match
// audit.Event so consumers can deserialize directly.
type outboxPayload struct {
	ID           string `json:"ID"`
	Category     string `json:"Category"`
	Timestamp    string `json:"Timestamp"`
	Action       string `json:"Action"`
	Subject      string `json:"Subject"`
	ActorEmail   string `json:"ActorEmail,omitempty"`
	Decision     string `json:"Decision,omitempty"`
	Reason       string `json:"Reason,omitempty"`
	RequestID    string `json:"RequestID,omitempty"`
	DeviceFamily string `json:"DeviceFamily,omitempty"`
}

// Append writes an audit event to the outbox table for Kafka publishing.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()
	category := audit.AuditEvent(event.Action).Category()

	payload := outboxPayload{
		ID:           eventID.String(),
		Category:     string(category),
		Timestamp:    event.Timestamp.Format(time.RFC3339Nano),
		Action:       event.Action,
		Subject:      event.Subject,
		ActorEmail:   event.ActorEmail,
		Decision:     event.Decision,
		Reason:       event.Reason,
		RequestID:    event.RequestID,
		DeviceFamily: event.DeviceFamily,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	const q = `
		INSERT INTO audit_outbox (id, category, action, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.execer(ctx).ExecContext(ctx, q,
		eventID, string(category), event.Action, body, event.Timestamp,
	); err != nil {
		return fmt.Errorf("insert audit outbox row: %w", err)
	}
	return nil
}

// PendingRow is an unpublished outbox entry.
type PendingRow struct {
	ID       uuid.UUID
	Category string
	Payload  []byte
}

// Pending returns up to limit unpublished rows, oldest first.
func (s *Store) Pending(ctx context.Context, limit int) ([]PendingRow, error) {
	const q = `
		SELECT id, category, payload
		FROM audit_outbox
		ORDER BY created_at
		LIMIT $1`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit outbox: %w", err)
	}
	defer rows.Close()

	var out []PendingRow
	for rows.Next() {
		var r PendingRow
		if err := rows.Scan(&r.ID, &r.Category, &r.Payload); err != nil {
			return nil, fmt.Errorf("scan audit outbox row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MarkPublished removes published rows from the outbox.
func (s *Store) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	const q = `DELETE FROM audit_outbox WHERE id = ANY($1)`
	if _, err := s.db.ExecContext(ctx, q, pq.Array(idsToStrings(ids))); err != nil {
		return fmt.Errorf("delete published outbox rows: %w", err)
	}
	return nil
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
