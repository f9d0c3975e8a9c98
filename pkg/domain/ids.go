package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Typed UUID identifiers. The type system prevents cross-entity assignment
// (passing a TalentID where a CompanyID is expected is a compile error), which
// matters in a codebase where most operations take two or three IDs.

type (
	// AuthorityID identifies a government authority account.
	AuthorityID uuid.UUID
	// AdminID identifies a platform administrator (whitelist-backed).
	AdminID uuid.UUID
	// CompanyID identifies an employer record.
	CompanyID uuid.UUID
	// TalentID identifies a job-seeker profile.
	TalentID uuid.UUID
	// JobID identifies a job posting (the employment relationship a rating refers to).
	JobID uuid.UUID
	// InstitutionID identifies a company/partner/campus/government account
	// as a verification target. The target kind travels alongside it.
	InstitutionID uuid.UUID
	// RequestID identifies a verification request. It doubles as the
	// idempotency key for the resolve transaction retry.
	RequestID uuid.UUID
	// RatingID identifies a peer-submitted inclusion rating. It doubles as
	// the idempotency key for the insert transaction retry.
	RatingID uuid.UUID
)

func (id AuthorityID) String() string   { return uuid.UUID(id).String() }
func (id AdminID) String() string       { return uuid.UUID(id).String() }
func (id CompanyID) String() string     { return uuid.UUID(id).String() }
func (id TalentID) String() string      { return uuid.UUID(id).String() }
func (id JobID) String() string         { return uuid.UUID(id).String() }
func (id InstitutionID) String() string { return uuid.UUID(id).String() }
func (id RequestID) String() string     { return uuid.UUID(id).String() }
func (id RatingID) String() string      { return uuid.UUID(id).String() }

func (id AuthorityID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id AdminID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id CompanyID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id TalentID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id JobID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id InstitutionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id RequestID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id RatingID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }

// NewRequestID mints a fresh verification request identifier.
func NewRequestID() RequestID { return RequestID(uuid.New()) }

// NewAdminID mints a fresh administrator identifier.
func NewAdminID() AdminID { return AdminID(uuid.New()) }

// NewInstitutionID mints a fresh institution identifier.
func NewInstitutionID() InstitutionID { return InstitutionID(uuid.New()) }

// NewRatingID mints a fresh rating identifier.
func NewRatingID() RatingID { return RatingID(uuid.New()) }

// NewCompanyID mints a fresh company identifier.
func NewCompanyID() CompanyID { return CompanyID(uuid.New()) }

// NewTalentID mints a fresh talent identifier.
func NewTalentID() TalentID { return TalentID(uuid.New()) }

// NewJobID mints a fresh job identifier.
func NewJobID() JobID { return JobID(uuid.New()) }

// NewAuthorityID mints a fresh authority identifier.
func NewAuthorityID() AuthorityID { return AuthorityID(uuid.New()) }

func parse(kind, s string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", kind, s, err)
	}
	return parsed, nil
}

// ParseRequestID constructs a RequestID from external input (URL params, JSON).
func ParseRequestID(s string) (RequestID, error) {
	parsed, err := parse("request id", s)
	return RequestID(parsed), err
}

// ParseInstitutionID constructs an InstitutionID from external input.
func ParseInstitutionID(s string) (InstitutionID, error) {
	parsed, err := parse("institution id", s)
	return InstitutionID(parsed), err
}

// ParseCompanyID constructs a CompanyID from external input.
func ParseCompanyID(s string) (CompanyID, error) {
	parsed, err := parse("company id", s)
	return CompanyID(parsed), err
}

// ParseTalentID constructs a TalentID from external input.
func ParseTalentID(s string) (TalentID, error) {
	parsed, err := parse("talent id", s)
	return TalentID(parsed), err
}

// ParseJobID constructs a JobID from external input.
func ParseJobID(s string) (JobID, error) {
	parsed, err := parse("job id", s)
	return JobID(parsed), err
}

// ParseAdminID constructs an AdminID from external input.
func ParseAdminID(s string) (AdminID, error) {
	parsed, err := parse("admin id", s)
	return AdminID(parsed), err
}

// ParseRatingID constructs a RatingID from external input.
func ParseRatingID(s string) (RatingID, error) {
	parsed, err := parse("rating id", s)
	return RatingID(parsed), err
}

// ParseAuthorityID constructs an AuthorityID from external input.
func ParseAuthorityID(s string) (AuthorityID, error) {
	parsed, err := parse("authority id", s)
	return AuthorityID(parsed), err
}
