package rating

import (
	"context"
	"sort"
	"sync"

	"inklusi/internal/scoring/models"
	"inklusi/pkg/domain"
	"inklusi/pkg/platform/sentinel"
)

type tuple struct {
	talent  domain.TalentID
	company domain.CompanyID
	job     domain.JobID
}

// InMemoryStore keeps ratings keyed by their one-per-relationship tuple.
type InMemoryStore struct {
	mu      sync.Mutex
	byTuple map[tuple]*models.InclusionRating
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byTuple: make(map[tuple]*models.InclusionRating)}
}

// Insert stores a rating. Returns sentinel.ErrConflict when the talent
// already rated this employment relationship.
func (s *InMemoryStore) Insert(ctx context.Context, r *models.InclusionRating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := tuple{r.TalentID, r.CompanyID, r.JobID}
	if _, exists := s.byTuple[key]; exists {
		return sentinel.ErrConflict
	}
	cp := *r
	s.byTuple[key] = &cp
	return nil
}

func (s *InMemoryStore) FindByTuple(ctx context.Context, talentID domain.TalentID, companyID domain.CompanyID, jobID domain.JobID) (*models.InclusionRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byTuple[tuple{talentID, companyID, jobID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// ListByCompany returns every rating for a company, oldest first.
func (s *InMemoryStore) ListByCompany(ctx context.Context, companyID domain.CompanyID) ([]*models.InclusionRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.InclusionRating
	for _, r := range s.byTuple {
		if r.CompanyID == companyID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
