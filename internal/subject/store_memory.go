package subject

import (
	"context"
	"sort"
	"sync"

	"inklusi/internal/jurisdiction"
)

// InMemoryDirectory serves subject listings from memory for tests and dev.
// Filtering goes through Scope.Matches, so memory and Postgres listings are
// scope-equivalent by construction.
type InMemoryDirectory struct {
	mu        sync.RWMutex
	talents   []Talent
	companies []Company
}

// NewInMemoryDirectory constructs an empty directory.
func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{}
}

// AddTalent seeds a talent row. Test helper; production rows come from the
// profile subsystem.
func (d *InMemoryDirectory) AddTalent(t Talent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.talents = append(d.talents, t)
}

// AddCompany seeds a company row.
func (d *InMemoryDirectory) AddCompany(c Company) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.companies = append(d.companies, c)
}

func (d *InMemoryDirectory) ListTalents(_ context.Context, scope jurisdiction.Scope) ([]Talent, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Talent
	for _, t := range d.talents {
		if scope.Matches(t.RegionCode) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (d *InMemoryDirectory) ListCompanies(_ context.Context, scope jurisdiction.Scope) ([]Company, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Company
	for _, c := range d.companies {
		if scope.Matches(c.RegionCode) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
