package models

import (
	"strings"
	"time"

	dErrors "inklusi/pkg/domain-errors"
	"inklusi/pkg/domain"
)

// AccessLevel is the capability tier of a whitelist entry. Absence of an
// entry means no administrative capability at all: the gate is default-deny.
type AccessLevel string

const (
	// LevelResearcher grants read-only access to aggregated views.
	LevelResearcher AccessLevel = "researcher"
	// LevelStaff adds merge/standardize actions and verification review.
	LevelStaff AccessLevel = "staff"
	// LevelAdmin adds user lifecycle mutation and whitelist management.
	LevelAdmin AccessLevel = "admin"
)

// ParseAccessLevel validates external input.
func ParseAccessLevel(s string) (AccessLevel, error) {
	switch AccessLevel(s) {
	case LevelResearcher, LevelStaff, LevelAdmin:
		return AccessLevel(s), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown access level: "+s)
	}
}

// Action is an administrative capability checked at the gate.
type Action string

const (
	ActionViewStatistics     Action = "view_statistics"
	ActionReviewVerification Action = "review_verification"
	ActionMergeRecords       Action = "merge_records"
	ActionManageUsers        Action = "manage_users"
	ActionManageWhitelist    Action = "manage_whitelist"
)

// capabilities maps each tier to the actions it grants. The map is the single
// source of truth; Allows never hardcodes tier comparisons.
var capabilities = map[AccessLevel]map[Action]bool{
	LevelResearcher: {
		ActionViewStatistics: true,
	},
	LevelStaff: {
		ActionViewStatistics:     true,
		ActionReviewVerification: true,
		ActionMergeRecords:       true,
	},
	LevelAdmin: {
		ActionViewStatistics:     true,
		ActionReviewVerification: true,
		ActionMergeRecords:       true,
		ActionManageUsers:        true,
		ActionManageWhitelist:    true,
	},
}

// Allows reports whether the tier grants the action.
func (l AccessLevel) Allows(action Action) bool {
	return capabilities[l][action]
}

// WhitelistEntry maps an administrator e-mail to a capability tier.
//
// Invariants:
//   - Email is unique, stored lowercased
//   - an entry authorizes nothing until activated (invite claimed)
//   - InviteHash holds only the bcrypt hash; the plaintext is shown once
type WhitelistEntry struct {
	ID          domain.AdminID
	Email       string
	Name        string
	AccessLevel AccessLevel
	Active      bool
	InviteHash  string
	CreatedAt   time.Time
	ActivatedAt *time.Time
}

// NewWhitelistEntry validates and constructs an inactive entry awaiting
// invite activation.
func NewWhitelistEntry(email, name string, level AccessLevel, inviteHash string, now time.Time) (*WhitelistEntry, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeValidation, "a valid e-mail address is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "entry name is required")
	}
	if _, err := ParseAccessLevel(string(level)); err != nil {
		return nil, err
	}
	return &WhitelistEntry{
		ID:          domain.NewAdminID(),
		Email:       email,
		Name:        strings.TrimSpace(name),
		AccessLevel: level,
		Active:      false,
		InviteHash:  inviteHash,
		CreatedAt:   now,
	}, nil
}

// Activate marks the entry usable after its invite is claimed.
func (e *WhitelistEntry) Activate(now time.Time) error {
	if e.Active {
		return dErrors.New(dErrors.CodeInvariantViolation, "entry is already active")
	}
	e.Active = true
	e.ActivatedAt = &now
	e.InviteHash = ""
	return nil
}
