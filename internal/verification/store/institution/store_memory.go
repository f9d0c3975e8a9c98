package institution

import (
	"context"
	"sync"
	"time"

	"inklusi/internal/verification/models"
	"inklusi/pkg/domain"
	"inklusi/pkg/platform/sentinel"
)

type key struct {
	targetType models.TargetType
	id         domain.InstitutionID
}

// Record is the slice of an institution the verification flow cares about.
type Record struct {
	Name       string
	IsVerified bool
	VerifiedAt *time.Time
}

// InMemoryStore tracks institution verification flags for tests and local runs.
type InMemoryStore struct {
	mu      sync.Mutex
	records map[key]*Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[key]*Record)}
}

// Add seeds an unverified institution.
func (s *InMemoryStore) Add(targetType models.TargetType, id domain.InstitutionID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key{targetType, id}] = &Record{Name: name}
}

func (s *InMemoryStore) Exists(ctx context.Context, targetType models.TargetType, id domain.InstitutionID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[key{targetType, id}]
	return ok, nil
}

// MarkVerified flips the institution's trusted flag. The caller runs this in
// the same transaction as the request resolution.
func (s *InMemoryStore) MarkVerified(ctx context.Context, targetType models.TargetType, id domain.InstitutionID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key{targetType, id}]
	if !ok {
		return sentinel.ErrNotFound
	}
	rec.IsVerified = true
	rec.VerifiedAt = &now
	return nil
}

// Get is a test helper.
func (s *InMemoryStore) Get(targetType models.TargetType, id domain.InstitutionID) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key{targetType, id}]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}
