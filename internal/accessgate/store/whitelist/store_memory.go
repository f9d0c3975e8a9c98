package whitelist

import (
	"context"
	"fmt"
	"sync"

	"inklusi/internal/accessgate/models"
	"inklusi/pkg/platform/sentinel"
)

// Error contract: stores return sentinel errors (ErrNotFound, ErrConflict)
// wrapped with context; the service translates them into coded domain errors.

// InMemoryStore keeps whitelist entries in memory for tests and development.
type InMemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]*models.WhitelistEntry
}

// New constructs an empty in-memory whitelist store.
func New() *InMemoryStore {
	return &InMemoryStore{byEmail: make(map[string]*models.WhitelistEntry)}
}

func (s *InMemoryStore) CreateIfEmailFree(_ context.Context, entry *models.WhitelistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[entry.Email]; exists {
		return fmt.Errorf("whitelist e-mail taken: %w", sentinel.ErrConflict)
	}
	cp := *entry
	s.byEmail[entry.Email] = &cp
	return nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*models.WhitelistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("whitelist entry not found: %w", sentinel.ErrNotFound)
	}
	cp := *entry
	return &cp, nil
}

func (s *InMemoryStore) Update(_ context.Context, entry *models.WhitelistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[entry.Email]; !ok {
		return fmt.Errorf("whitelist entry not found: %w", sentinel.ErrNotFound)
	}
	cp := *entry
	s.byEmail[entry.Email] = &cp
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; !ok {
		return fmt.Errorf("whitelist entry not found: %w", sentinel.ErrNotFound)
	}
	delete(s.byEmail, email)
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.WhitelistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.WhitelistEntry, 0, len(s.byEmail))
	for _, entry := range s.byEmail {
		cp := *entry
		out = append(out, &cp)
	}
	return out, nil
}

// CountActiveAdmins returns how many activated Admin-tier entries exist.
// The service refuses to remove the last one.
func (s *InMemoryStore) CountActiveAdmins(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, entry := range s.byEmail {
		if entry.Active && entry.AccessLevel == models.LevelAdmin {
			count++
		}
	}
	return count, nil
}
