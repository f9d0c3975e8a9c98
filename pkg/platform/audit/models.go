// Package audit defines the audit event model and the store contract.
//
// Events are written to an outbox table in the same transaction as the
// business write (pkg/platform/tx) and published to Kafka by the relay.
// The event stream is the tamper-evident record reviewers and regulators
// consult when a verification decision is disputed.
package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events for retention and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: every
	// verification resolution and whitelist mutation. Long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring:
	// denied authorizations, invite activation failures.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine visibility events: queue reads,
	// scorecard recomputations. Can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. It stays
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Action    string
	// Subject names the affected entity (request ID, company ID, e-mail).
	Subject string
	// ActorEmail is the authenticated caller who performed the action.
	ActorEmail string
	// Decision and Reason capture the outcome of resolution/authorization
	// actions ("approved", "denied") and the operator-visible reason.
	Decision string
	Reason   string
	// RequestID is the HTTP correlation ID for cross-log joins.
	RequestID string
	// DeviceFamily is the parsed client summary ("Chrome/Linux").
	DeviceFamily string
}

// AuditEvent names the actions this system emits.
type AuditEvent string

const (
	// Verification workflow events
	EventVerificationSubmitted AuditEvent = "verification_submitted"
	EventVerificationApproved  AuditEvent = "verification_approved"
	EventVerificationRejected  AuditEvent = "verification_rejected"

	// Scoring events
	EventRatingSubmitted AuditEvent = "rating_submitted"

	// Access gate events
	EventAuthorizationDenied    AuditEvent = "authorization_denied"
	EventWhitelistEntryAdded    AuditEvent = "whitelist_entry_added"
	EventWhitelistEntryRemoved  AuditEvent = "whitelist_entry_removed"
	EventWhitelistInviteClaimed AuditEvent = "whitelist_invite_claimed"
)

// eventCategories is the source of truth for category routing.
var eventCategories = map[AuditEvent]EventCategory{
	EventVerificationSubmitted:  CategoryCompliance,
	EventVerificationApproved:   CategoryCompliance,
	EventVerificationRejected:   CategoryCompliance,
	EventRatingSubmitted:        CategoryOperations,
	EventAuthorizationDenied:    CategorySecurity,
	EventWhitelistEntryAdded:    CategoryCompliance,
	EventWhitelistEntryRemoved:  CategoryCompliance,
	EventWhitelistInviteClaimed: CategorySecurity,
}

// Category returns the routing category for the event, defaulting to
// operations for unknown actions.
func (e AuditEvent) Category() EventCategory {
	if c, ok := eventCategories[e]; ok {
		return c
	}
	return CategoryOperations
}

// Store persists audit events. Implementations must tolerate being called
// inside an enclosing SQL transaction (pkg/platform/tx).
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher is the narrow emit interface services depend on.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}
