package models

import (
	"strings"
	"time"

	dErrors "inklusi/pkg/domain-errors"
	"inklusi/pkg/domain"
)

// TargetType is the institution kind a verification request refers to.
type TargetType string

const (
	TargetCompany    TargetType = "company"
	TargetPartner    TargetType = "partner"
	TargetCampus     TargetType = "campus"
	TargetGovernment TargetType = "government"
)

// ParseTargetType validates external input.
func ParseTargetType(s string) (TargetType, error) {
	switch TargetType(s) {
	case TargetCompany, TargetPartner, TargetCampus, TargetGovernment:
		return TargetType(s), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown target type: "+s)
	}
}

// Status is the lifecycle state of a verification request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Decision is a terminal resolution outcome.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// ParseDecision validates external input.
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApproved, DecisionRejected:
		return Decision(s), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown decision: "+s)
	}
}

// Status returns the terminal status a decision produces.
func (d Decision) Status() Status {
	if d == DecisionApproved {
		return StatusApproved
	}
	return StatusRejected
}

// VerificationRequest is an institution's bid to prove legitimacy via an
// uploaded document.
//
// Invariants:
//   - Status starts Pending and is set exactly once to a terminal value;
//     there is no transition out of Approved or Rejected
//   - AdminNotes is mandatory when rejected, optional otherwise
//   - at most one Pending request exists per (TargetType, TargetID)
//   - rows are never physically deleted; resolved requests are the audit
//     trail an institution's history is built from
//
// A rejected institution wanting another review submits a brand-new request;
// the old one stays as history. This denies silent overwrite of a rejection.
type VerificationRequest struct {
	ID          domain.RequestID
	TargetType  TargetType
	TargetID    domain.InstitutionID
	DocumentURL string
	Status      Status
	AdminNotes  string
	CreatedAt   time.Time
	ResolvedAt  *time.Time
	ResolvedBy  *domain.AdminID
}

// NewVerificationRequest validates and constructs a pending request.
// DocumentURL is an opaque reference; contents are never fetched here.
func NewVerificationRequest(targetType TargetType, targetID domain.InstitutionID, documentURL string, now time.Time) (*VerificationRequest, error) {
	if _, err := ParseTargetType(string(targetType)); err != nil {
		return nil, err
	}
	if targetID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "target institution is required")
	}
	if strings.TrimSpace(documentURL) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "a legitimacy document link is required")
	}
	return &VerificationRequest{
		ID:          domain.NewRequestID(),
		TargetType:  targetType,
		TargetID:    targetID,
		DocumentURL: strings.TrimSpace(documentURL),
		Status:      StatusPending,
		CreatedAt:   now,
	}, nil
}

// IsResolved reports whether the request reached a terminal state.
func (r *VerificationRequest) IsResolved() bool {
	return r.Status != StatusPending
}

// CanResolve checks the pending-only transition rule.
// Use with ApplyResolution inside the store's atomic section.
func (r *VerificationRequest) CanResolve() error {
	if r.IsResolved() {
		return dErrors.New(dErrors.CodeInvariantViolation, "request is already resolved")
	}
	return nil
}

// ValidateResolution checks the decision inputs without mutating.
// Notes are required for rejection so the institution learns why.
func ValidateResolution(decision Decision, notes string) error {
	if _, err := ParseDecision(string(decision)); err != nil {
		return err
	}
	if decision == DecisionRejected && strings.TrimSpace(notes) == "" {
		return dErrors.New(dErrors.CodeValidation, "rejection requires reviewer notes")
	}
	return nil
}

// ApplyResolution transitions the request to its terminal state. Call
// CanResolve and ValidateResolution first.
func (r *VerificationRequest) ApplyResolution(decision Decision, notes string, resolvedBy domain.AdminID, now time.Time) {
	r.Status = decision.Status()
	r.AdminNotes = strings.TrimSpace(notes)
	r.ResolvedAt = &now
	r.ResolvedBy = &resolvedBy
}
