// Package service implements the institution verification workflow: submit,
// review queue, and the atomic approve/reject resolution.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks RequestStore,InstitutionStore,AccessGate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"inklusi/internal/verification/metrics"
	"inklusi/internal/verification/models"
	"inklusi/pkg/domain"
	dErrors "inklusi/pkg/domain-errors"
	"inklusi/pkg/platform/audit"
	"inklusi/pkg/platform/sentinel"
	"inklusi/pkg/platform/tx"
	"inklusi/pkg/requestcontext"
)

// RequestStore persists verification requests. ResolveIfPending must be a
// compare-and-set: it succeeds for at most one caller per request.
type RequestStore interface {
	Create(ctx context.Context, req *models.VerificationRequest) error
	FindByID(ctx context.Context, id domain.RequestID) (*models.VerificationRequest, error)
	ResolveIfPending(ctx context.Context, id domain.RequestID, decision models.Decision, notes string, resolvedBy domain.AdminID, now time.Time) (*models.VerificationRequest, error)
	ListPending(ctx context.Context, targetType models.TargetType) ([]*models.VerificationRequest, error)
	ListByTarget(ctx context.Context, targetType models.TargetType, targetID domain.InstitutionID) ([]*models.VerificationRequest, error)
}

// InstitutionStore reads and flips institution trust flags. MarkVerified must
// honor a transaction carried in the context.
type InstitutionStore interface {
	Exists(ctx context.Context, targetType models.TargetType, id domain.InstitutionID) (bool, error)
	MarkVerified(ctx context.Context, targetType models.TargetType, id domain.InstitutionID, now time.Time) error
}

// Reviewer identifies the admin acting on a request.
type Reviewer struct {
	ID    domain.AdminID
	Email string
}

// AccessGate authorizes reviewers. Implementations fail closed.
type AccessGate interface {
	AuthorizeReviewer(ctx context.Context, email string) (Reviewer, error)
}

type Service struct {
	requests     RequestStore
	institutions InstitutionStore
	gate         AccessGate
	runner       tx.Runner

	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Publisher
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func New(requests RequestStore, institutions InstitutionStore, gate AccessGate, runner tx.Runner, opts ...Option) (*Service, error) {
	if requests == nil || institutions == nil {
		return nil, fmt.Errorf("request and institution stores are required")
	}
	if gate == nil {
		return nil, fmt.Errorf("access gate is required")
	}
	if runner == nil {
		runner = tx.PassthroughRunner{}
	}
	s := &Service{
		requests:     requests,
		institutions: institutions,
		gate:         gate,
		runner:       runner,
		logger:       slog.Default(),
		tracer:       otel.Tracer("inklusi/verification"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit files a pending verification request for an institution.
//
// Exactly one unresolved request may exist per institution; a second submit
// while one is pending is a conflict. A previously rejected institution may
// submit again, which opens a fresh request and leaves the rejection intact.
func (s *Service) Submit(ctx context.Context, targetType models.TargetType, targetID domain.InstitutionID, documentURL string) (*models.VerificationRequest, error) {
	now := requestcontext.Now(ctx)

	req, err := models.NewVerificationRequest(targetType, targetID, documentURL, now)
	if err != nil {
		return nil, err
	}

	exists, err := s.institutions.Exists(ctx, targetType, targetID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "institution lookup failed")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "verification target does not exist")
	}

	if err := s.requests.Create(ctx, req); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "an unresolved request already exists for this institution")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not file verification request")
	}

	if s.metrics != nil {
		s.metrics.RequestsSubmitted.WithLabelValues(string(targetType)).Inc()
	}
	s.logger.InfoContext(ctx, "verification request submitted",
		"request_id", req.ID.String(),
		"target_type", string(targetType),
		"target_id", targetID.String(),
	)
	s.emitAudit(ctx, audit.EventVerificationSubmitted, req, "", "")
	return req, nil
}

// Resolve applies a terminal decision to a pending request.
//
// The request update and, on approval, the institution flag flip are one
// transaction together with the audit record. The underlying store resolves
// by compare-and-set, so when two reviewers race exactly one wins and the
// loser gets a conflict naming the earlier resolution.
//
// A transient store failure is retried once. The request ID is the
// idempotency key: if the first attempt actually committed, the retry
// observes this reviewer's own resolution and reports success instead of a
// phantom conflict.
func (s *Service) Resolve(ctx context.Context, callerEmail string, requestID domain.RequestID, decision models.Decision, notes string) (*models.VerificationRequest, error) {
	ctx, span := s.tracer.Start(ctx, "verification.resolve",
		trace.WithAttributes(
			attribute.String("request.id", requestID.String()),
			attribute.String("request.decision", string(decision)),
		))
	defer span.End()

	reviewer, err := s.gate.AuthorizeReviewer(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateResolution(decision, notes); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	resolved, err := s.resolveOnce(ctx, requestID, decision, notes, reviewer, now)
	if isTransient(err) {
		if s.metrics != nil {
			s.metrics.ResolveRetries.Inc()
		}
		s.logger.WarnContext(ctx, "resolve retrying after transient store error",
			"request_id", requestID.String(), "error", err)
		resolved, err = s.resolveOnce(ctx, requestID, decision, notes, reviewer, now)
		if resolved == nil && dErrors.HasCode(err, dErrors.CodeConflict) {
			// The first attempt may have committed before the error surfaced.
			resolved, err = s.reclaimOwnResolution(ctx, requestID, decision, reviewer)
		}
	}
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) && s.metrics != nil {
			s.metrics.ResolveConflicts.Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RequestsResolved.WithLabelValues(string(decision)).Inc()
	}
	s.logger.InfoContext(ctx, "verification request resolved",
		"request_id", requestID.String(),
		"decision", string(decision),
		"reviewer", reviewer.Email,
	)
	return resolved, nil
}

// resolveOnce is a single transactional attempt: resolve the request row,
// flip the institution flag on approval, append the audit record.
func (s *Service) resolveOnce(ctx context.Context, requestID domain.RequestID, decision models.Decision, notes string, reviewer Reviewer, now time.Time) (*models.VerificationRequest, error) {
	var resolved *models.VerificationRequest
	err := s.runner.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := s.requests.ResolveIfPending(txCtx, requestID, decision, notes, reviewer.ID, now)
		if err != nil {
			switch {
			case errors.Is(err, sentinel.ErrNotFound):
				return dErrors.New(dErrors.CodeNotFound, "verification request not found")
			case errors.Is(err, sentinel.ErrAlreadyResolved):
				return dErrors.New(dErrors.CodeConflict, "this request was already resolved by another reviewer")
			default:
				return fmt.Errorf("resolve request: %w", err)
			}
		}

		if decision == models.DecisionApproved {
			if err := s.institutions.MarkVerified(txCtx, req.TargetType, req.TargetID, now); err != nil {
				return fmt.Errorf("mark institution verified: %w", err)
			}
		}

		action := audit.EventVerificationApproved
		if decision == models.DecisionRejected {
			action = audit.EventVerificationRejected
		}
		if err := s.emitAuditTx(txCtx, action, req, reviewer.Email, notes); err != nil {
			return err
		}

		resolved = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// reclaimOwnResolution checks whether a conflicting retry is actually our own
// committed first attempt.
func (s *Service) reclaimOwnResolution(ctx context.Context, requestID domain.RequestID, decision models.Decision, reviewer Reviewer) (*models.VerificationRequest, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not confirm resolution")
	}
	if req.ResolvedBy != nil && *req.ResolvedBy == reviewer.ID && req.Status == decision.Status() {
		return req, nil
	}
	return nil, dErrors.New(dErrors.CodeConflict, "this request was already resolved by another reviewer")
}

// ListQueue returns pending requests oldest-first for reviewer triage.
func (s *Service) ListQueue(ctx context.Context, callerEmail string, targetType models.TargetType) ([]*models.VerificationRequest, error) {
	if _, err := s.gate.AuthorizeReviewer(ctx, callerEmail); err != nil {
		return nil, err
	}
	if targetType != "" {
		if _, err := models.ParseTargetType(string(targetType)); err != nil {
			return nil, err
		}
	}

	queue, err := s.requests.ListPending(ctx, targetType)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not read verification queue")
	}
	if s.metrics != nil && targetType == "" {
		s.metrics.QueueDepth.Set(float64(len(queue)))
	}
	return queue, nil
}

// History returns every request filed for an institution, newest-first.
// Resolved requests are never deleted, so this is the complete trail.
func (s *Service) History(ctx context.Context, callerEmail string, targetType models.TargetType, targetID domain.InstitutionID) ([]*models.VerificationRequest, error) {
	if _, err := s.gate.AuthorizeReviewer(ctx, callerEmail); err != nil {
		return nil, err
	}
	if _, err := models.ParseTargetType(string(targetType)); err != nil {
		return nil, err
	}

	history, err := s.requests.ListByTarget(ctx, targetType, targetID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not read verification history")
	}
	return history, nil
}

// isTransient treats any failure without a business error code as retryable.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	for _, code := range []dErrors.Code{
		dErrors.CodeNotFound, dErrors.CodeConflict, dErrors.CodeValidation,
		dErrors.CodeInvalidInput, dErrors.CodeForbidden, dErrors.CodeInvariantViolation,
	} {
		if dErrors.HasCode(err, code) {
			return false
		}
	}
	return true
}

// emitAudit is best-effort: submission already committed, a lost audit row is
// logged rather than failing the caller.
func (s *Service) emitAudit(ctx context.Context, action audit.AuditEvent, req *models.VerificationRequest, actor, reason string) {
	if err := s.emitAuditTx(ctx, action, req, actor, reason); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed", "action", string(action), "error", err)
	}
}

// emitAuditTx joins the ambient transaction; inside resolveOnce a failure
// rolls back the whole resolution.
func (s *Service) emitAuditTx(ctx context.Context, action audit.AuditEvent, req *models.VerificationRequest, actor, reason string) error {
	if s.audit == nil {
		return nil
	}
	decision := ""
	if req.IsResolved() {
		decision = string(req.Status)
	}
	return s.audit.Emit(ctx, audit.Event{
		Category:     action.Category(),
		Timestamp:    requestcontext.Now(ctx),
		Action:       string(action),
		Subject:      req.ID.String(),
		ActorEmail:   actor,
		Decision:     decision,
		Reason:       reason,
		RequestID:    requestcontext.RequestID(ctx),
		DeviceFamily: requestcontext.DeviceFamily(ctx),
	})
}
