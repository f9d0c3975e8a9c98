// Package subject exposes read-only access to talent and company records for
// jurisdiction-scoped listings. This subsystem never writes subject rows;
// profile editing lives elsewhere.
package subject

import (
	"context"

	"inklusi/internal/jurisdiction"
	"inklusi/pkg/domain"
)

// Talent is a job-seeker profile as seen by an authority dashboard.
type Talent struct {
	ID         domain.TalentID
	Name       string
	RegionCode domain.RegionCode
}

// Company is an employer record as seen by an authority dashboard.
type Company struct {
	ID         domain.CompanyID
	Name       string
	RegionCode domain.RegionCode
	Verified   bool
}

// Directory is the read port the jurisdiction endpoints consume.
// Implementations must honor the scope's exclusion of subjects with an unset
// region code: undetermined jurisdiction rows never appear in province or
// city listings.
type Directory interface {
	ListTalents(ctx context.Context, scope jurisdiction.Scope) ([]Talent, error)
	ListCompanies(ctx context.Context, scope jurisdiction.Scope) ([]Company, error)
}
