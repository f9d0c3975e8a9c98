// Package service implements the admin access gate: the single choke point
// every mutating administrative path must pass through. An e-mail without an
// activated whitelist entry authorizes nothing, regardless of how many UI
// entry points exist upstream.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gatemetrics "inklusi/internal/accessgate/metrics"
	"inklusi/internal/accessgate/models"
	dErrors "inklusi/pkg/domain-errors"
	"inklusi/pkg/platform/audit"
	"inklusi/pkg/platform/secrets"
	"inklusi/pkg/platform/sentinel"
	"inklusi/pkg/requestcontext"
)

// Store is the whitelist persistence port.
type Store interface {
	CreateIfEmailFree(ctx context.Context, entry *models.WhitelistEntry) error
	FindByEmail(ctx context.Context, email string) (*models.WhitelistEntry, error)
	Update(ctx context.Context, entry *models.WhitelistEntry) error
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]*models.WhitelistEntry, error)
	CountActiveAdmins(ctx context.Context) (int, error)
}

// Service resolves caller e-mails to capability tiers.
type Service struct {
	store          Store
	auditPublisher audit.Publisher
	logger         *slog.Logger
	metrics        *gatemetrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for denial reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithAuditPublisher sets the audit sink for denials and whitelist mutations.
func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *gatemetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the gate service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("whitelist store is required")
	}
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// errDenied is the stable rejection for callers without the capability.
// Handlers map it to 403 with the message verbatim.
func errDenied() error {
	return dErrors.New(dErrors.CodeForbidden, "you are not authorized to perform this action")
}

// Authorize resolves an e-mail against the whitelist and checks the action.
//
// The lookup is a case-sensitive exact match against the stored value; the
// auth middleware lowercases e-mails before they reach this point. No entry,
// an unactivated entry, or an insufficient tier all deny identically, so the
// caller learns nothing about which of the three applied.
func (s *Service) Authorize(ctx context.Context, email string, action models.Action) (models.AccessLevel, error) {
	entry, err := s.Identify(ctx, email, action)
	if err != nil {
		return "", err
	}
	return entry.AccessLevel, nil
}

// Identify is Authorize plus the resolved whitelist entry, for flows that
// need to record who acted (verification resolutions store the reviewer ID).
func (s *Service) Identify(ctx context.Context, email string, action models.Action) (*models.WhitelistEntry, error) {
	if strings.TrimSpace(email) == "" {
		s.recordDenial(ctx, email, action, "no authenticated caller")
		return nil, errDenied()
	}

	entry, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.recordDenial(ctx, email, action, "not whitelisted")
			return nil, errDenied()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "whitelist lookup failed")
	}
	if !entry.Active {
		s.recordDenial(ctx, email, action, "invite not claimed")
		return nil, errDenied()
	}
	if !entry.AccessLevel.Allows(action) {
		s.recordDenial(ctx, email, action, "insufficient access level")
		return nil, errDenied()
	}

	if s.metrics != nil {
		s.metrics.IncrementGranted(string(action))
	}
	return entry, nil
}

// AddEntry creates an inactive whitelist entry and returns the one-time
// invite secret. Caller must hold ActionManageWhitelist.
func (s *Service) AddEntry(ctx context.Context, callerEmail, email, name string, level models.AccessLevel) (*models.WhitelistEntry, string, error) {
	if _, err := s.Authorize(ctx, callerEmail, models.ActionManageWhitelist); err != nil {
		return nil, "", err
	}

	invite, err := secrets.Generate()
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate invite secret")
	}
	inviteHash, err := secrets.Hash(invite)
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash invite secret")
	}

	now := requestcontext.Now(ctx)
	entry, err := models.NewWhitelistEntry(email, name, level, inviteHash, now)
	if err != nil {
		return nil, "", err
	}

	if err := s.store.CreateIfEmailFree(ctx, entry); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, "", dErrors.New(dErrors.CodeConflict, "an entry for this e-mail already exists")
		}
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to create whitelist entry")
	}

	if err := s.emitCompliance(ctx, audit.EventWhitelistEntryAdded, entry.Email, callerEmail, string(level)); err != nil {
		return nil, "", err
	}
	if s.metrics != nil {
		s.metrics.IncrementWhitelistMutation()
	}
	return entry, invite, nil
}

// Bootstrap creates the first admin entry, already active, when the
// whitelist is empty. With any entry present it is a no-op; the normal
// authorized AddEntry path takes over from there.
func (s *Service) Bootstrap(ctx context.Context, email, name string) error {
	existing, err := s.store.List(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list whitelist entries")
	}
	if len(existing) > 0 {
		return nil
	}

	now := requestcontext.Now(ctx)
	entry, err := models.NewWhitelistEntry(email, name, models.LevelAdmin, "", now)
	if err != nil {
		return err
	}
	if err := entry.Activate(now); err != nil {
		return err
	}

	if err := s.store.CreateIfEmailFree(ctx, entry); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create bootstrap admin")
	}
	return s.emitCompliance(ctx, audit.EventWhitelistEntryAdded, entry.Email, "bootstrap", string(models.LevelAdmin))
}

// RemoveEntry deletes a whitelist entry. The last activated Admin entry
// cannot be removed; that would lock everyone out of whitelist management.
func (s *Service) RemoveEntry(ctx context.Context, callerEmail, email string) error {
	if _, err := s.Authorize(ctx, callerEmail, models.ActionManageWhitelist); err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	entry, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "no whitelist entry for this e-mail")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "whitelist lookup failed")
	}

	if entry.Active && entry.AccessLevel == models.LevelAdmin {
		admins, err := s.store.CountActiveAdmins(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count admins")
		}
		if admins <= 1 {
			return dErrors.New(dErrors.CodeConflict, "cannot remove the last admin entry")
		}
	}

	if err := s.store.Delete(ctx, email); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete whitelist entry")
	}

	if err := s.emitCompliance(ctx, audit.EventWhitelistEntryRemoved, email, callerEmail, string(entry.AccessLevel)); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementWhitelistMutation()
	}
	return nil
}

// ListEntries returns all whitelist entries. Caller must hold whitelist
// management capability.
func (s *Service) ListEntries(ctx context.Context, callerEmail string) ([]*models.WhitelistEntry, error) {
	if _, err := s.Authorize(ctx, callerEmail, models.ActionManageWhitelist); err != nil {
		return nil, err
	}
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list whitelist entries")
	}
	return entries, nil
}

// ClaimInvite activates an entry when the invitee presents the one-time
// secret. A wrong secret or an already-active entry both fail without
// revealing which.
func (s *Service) ClaimInvite(ctx context.Context, email, secret string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	entry, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeForbidden, "invalid invite")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "whitelist lookup failed")
	}
	if entry.Active || entry.InviteHash == "" {
		return dErrors.New(dErrors.CodeForbidden, "invalid invite")
	}
	if err := secrets.Verify(secret, entry.InviteHash); err != nil {
		s.logSecurity(ctx, audit.EventWhitelistInviteClaimed, email, "secret mismatch")
		return dErrors.New(dErrors.CodeForbidden, "invalid invite")
	}

	if err := entry.Activate(requestcontext.Now(ctx)); err != nil {
		return err
	}
	if err := s.store.Update(ctx, entry); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to activate whitelist entry")
	}

	s.logSecurity(ctx, audit.EventWhitelistInviteClaimed, email, "activated")
	return nil
}

// recordDenial logs and audits a denial. Audit emission here is best-effort:
// the denial stands regardless of whether the event lands.
func (s *Service) recordDenial(ctx context.Context, email string, action models.Action, reason string) {
	if s.metrics != nil {
		s.metrics.IncrementDenied(string(action))
	}
	if s.logger != nil {
		s.logger.WarnContext(ctx, "authorization denied",
			"email", email,
			"action", string(action),
			"reason", reason,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if s.auditPublisher != nil {
		_ = s.auditPublisher.Emit(ctx, audit.Event{
			Timestamp:    requestcontext.Now(ctx),
			Action:       string(audit.EventAuthorizationDenied),
			Subject:      string(action),
			ActorEmail:   email,
			Decision:     "denied",
			Reason:       reason,
			RequestID:    requestcontext.RequestID(ctx),
			DeviceFamily: requestcontext.DeviceFamily(ctx),
		})
	}
}

// emitCompliance is fail-closed: whitelist mutations without an audit record
// must not commit from the caller's perspective.
func (s *Service) emitCompliance(ctx context.Context, action audit.AuditEvent, subject, actor, reason string) error {
	if s.auditPublisher == nil {
		return nil
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp:    requestcontext.Now(ctx),
		Action:       string(action),
		Subject:      subject,
		ActorEmail:   actor,
		Reason:       reason,
		RequestID:    requestcontext.RequestID(ctx),
		DeviceFamily: requestcontext.DeviceFamily(ctx),
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

func (s *Service) logSecurity(ctx context.Context, action audit.AuditEvent, subject, reason string) {
	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp:    requestcontext.Now(ctx),
		Action:       string(action),
		Subject:      subject,
		Reason:       reason,
		RequestID:    requestcontext.RequestID(ctx),
		DeviceFamily: requestcontext.DeviceFamily(ctx),
	})
}
