// Package jurisdiction computes which subject records a government authority
// may see.
//
// The resolver is pure: it turns an authority's declared scope into a Scope
// predicate that the subject stores translate into their query layer. It
// never touches a database itself, which keeps the jurisdiction rules
// unit-testable independent of any query engine.
package jurisdiction

import (
	dErrors "inklusi/pkg/domain-errors"
	"inklusi/internal/region"
	"inklusi/pkg/domain"
)

// ScopeKind is the declared jurisdiction level of an authority.
type ScopeKind string

const (
	ScopeNational ScopeKind = "national"
	ScopeProvince ScopeKind = "province"
	ScopeCity     ScopeKind = "city"
)

// Authority is a government actor with a declared jurisdiction. RegionCode is
// zero only for national scope.
type Authority struct {
	ID         domain.AuthorityID
	Name       string
	ScopeKind  ScopeKind
	RegionCode domain.RegionCode
}

// Scope is the resolved predicate over subject region codes.
//
// Matching rules:
//   - national: every subject matches
//   - province: subject code starts with the authority's province code
//   - city: subject code equals the authority's city code
//
// A subject with an unset region code never matches a non-national scope:
// undetermined jurisdiction is excluded, not silently assigned.
type Scope struct {
	kind ScopeKind
	code domain.RegionCode
}

// Kind returns the scope level.
func (s Scope) Kind() ScopeKind { return s.kind }

// Code returns the authority's region code; zero for national scope.
func (s Scope) Code() domain.RegionCode { return s.code }

// Matches evaluates the predicate against a single subject's region code.
// Prefer the store-level translation for large subject sets; this row-by-row
// form is scope-equivalent and exists for in-memory filtering and tests.
func (s Scope) Matches(subject domain.RegionCode) bool {
	switch s.kind {
	case ScopeNational:
		return true
	case ScopeProvince:
		return subject.Within(s.code)
	case ScopeCity:
		return !subject.IsZero() && subject == s.code
	default:
		return false
	}
}

// Resolver validates authorities against the region directory and produces
// scopes.
type Resolver struct {
	catalog *region.Catalog
}

// NewResolver builds a resolver over the loaded region catalog.
func NewResolver(catalog *region.Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// ResolveScope computes the subject predicate for an authority.
//
// Errors: CodeValidation when the declared scope and region code disagree
// (province scope with a city code, national scope with any code, a code the
// catalog does not know).
func (r *Resolver) ResolveScope(authority Authority) (Scope, error) {
	switch authority.ScopeKind {
	case ScopeNational:
		if !authority.RegionCode.IsZero() {
			return Scope{}, dErrors.New(dErrors.CodeValidation, "national authority must not declare a region code")
		}
		return Scope{kind: ScopeNational}, nil

	case ScopeProvince:
		if !authority.RegionCode.IsProvince() {
			return Scope{}, dErrors.New(dErrors.CodeValidation, "province authority requires a province-level region code")
		}
		if !r.catalog.Contains(authority.RegionCode) {
			return Scope{}, dErrors.New(dErrors.CodeValidation, "unknown province code: "+authority.RegionCode.String())
		}
		return Scope{kind: ScopeProvince, code: authority.RegionCode}, nil

	case ScopeCity:
		if !authority.RegionCode.IsCity() {
			return Scope{}, dErrors.New(dErrors.CodeValidation, "city authority requires a city-level region code")
		}
		if !r.catalog.Contains(authority.RegionCode) {
			return Scope{}, dErrors.New(dErrors.CodeValidation, "unknown city code: "+authority.RegionCode.String())
		}
		return Scope{kind: ScopeCity, code: authority.RegionCode}, nil

	default:
		return Scope{}, dErrors.New(dErrors.CodeValidation, "unknown scope kind: "+string(authority.ScopeKind))
	}
}
