// Package region holds the static catalog of administrative regions.
//
// Codes are nesting-prefixed: a city code starts with its owning province's
// code. The catalog is immutable reference data loaded once at process start;
// jurisdiction resolution and profile validation read it concurrently without
// locking.
package region

import (
	"sort"

	dErrors "inklusi/pkg/domain-errors"
	"inklusi/pkg/domain"
)

// Kind is the administrative level of a region.
type Kind string

const (
	KindProvince Kind = "province"
	KindCity     Kind = "city"
)

// Region is one catalog entry.
type Region struct {
	Code domain.RegionCode `json:"code"`
	Name string            `json:"name"`
	Kind Kind              `json:"kind"`
}

// Catalog is the validated, immutable region directory.
type Catalog struct {
	byCode map[domain.RegionCode]Region
	sorted []Region
}

// NewCatalog validates entries and builds the directory. It enforces the
// nesting invariant: every city code must carry the prefix of a known
// province.
func NewCatalog(entries []Region) (*Catalog, error) {
	byCode := make(map[domain.RegionCode]Region, len(entries))

	for _, r := range entries {
		if _, err := domain.ParseRegionCode(string(r.Code)); err != nil || r.Code.IsZero() {
			return nil, dErrors.New(dErrors.CodeValidation, "region catalog entry has an invalid code: "+string(r.Code))
		}
		if r.Name == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "region catalog entry has no name: "+string(r.Code))
		}
		switch r.Kind {
		case KindProvince:
			if !r.Code.IsProvince() {
				return nil, dErrors.New(dErrors.CodeValidation, "province entry with city-length code: "+string(r.Code))
			}
		case KindCity:
			if !r.Code.IsCity() {
				return nil, dErrors.New(dErrors.CodeValidation, "city entry with province-length code: "+string(r.Code))
			}
		default:
			return nil, dErrors.New(dErrors.CodeValidation, "region catalog entry has unknown kind: "+string(r.Kind))
		}
		if _, dup := byCode[r.Code]; dup {
			return nil, dErrors.New(dErrors.CodeValidation, "duplicate region code: "+string(r.Code))
		}
		byCode[r.Code] = r
	}

	for _, r := range byCode {
		if r.Kind != KindCity {
			continue
		}
		owner, ok := byCode[r.Code.Province()]
		if !ok || owner.Kind != KindProvince {
			return nil, dErrors.New(dErrors.CodeValidation, "city without owning province: "+string(r.Code))
		}
	}

	sorted := make([]Region, 0, len(byCode))
	for _, r := range byCode {
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	return &Catalog{byCode: byCode, sorted: sorted}, nil
}

// Lookup returns the region for a code.
func (c *Catalog) Lookup(code domain.RegionCode) (Region, bool) {
	r, ok := c.byCode[code]
	return r, ok
}

// Contains reports whether the code exists in the catalog.
func (c *Catalog) Contains(code domain.RegionCode) bool {
	_, ok := c.byCode[code]
	return ok
}

// Provinces returns all province entries, code-ordered.
func (c *Catalog) Provinces() []Region {
	var out []Region
	for _, r := range c.sorted {
		if r.Kind == KindProvince {
			out = append(out, r)
		}
	}
	return out
}

// CitiesOf returns the cities nested under a province code, code-ordered.
func (c *Catalog) CitiesOf(province domain.RegionCode) []Region {
	var out []Region
	for _, r := range c.sorted {
		if r.Kind == KindCity && r.Code.Within(province) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.sorted) }
