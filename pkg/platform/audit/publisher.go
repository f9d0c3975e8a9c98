package audit

import (
	"context"
	"fmt"
	"log/slog"
)

// StorePublisher writes events synchronously to the audit store, fail-closed:
// if the event cannot be persisted the calling operation must fail too. Used
// for compliance events (verification resolutions, whitelist mutations) where
// a missing audit record is worse than a rejected request.
type StorePublisher struct {
	store  Store
	logger *slog.Logger
}

// NewStorePublisher wraps a store in the Publisher interface.
func NewStorePublisher(store Store, logger *slog.Logger) *StorePublisher {
	return &StorePublisher{store: store, logger: logger}
}

// Emit synchronously appends the event, defaulting Category from the action.
func (p *StorePublisher) Emit(ctx context.Context, event Event) error {
	if event.Action == "" {
		return fmt.Errorf("audit event requires an action")
	}
	if event.Category == "" {
		event.Category = AuditEvent(event.Action).Category()
	}
	if err := p.store.Append(ctx, event); err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "audit append failed",
				"action", event.Action,
				"error", err,
			)
		}
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
