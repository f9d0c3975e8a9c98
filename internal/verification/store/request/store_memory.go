package request

import (
	"context"
	"sort"
	"sync"
	"time"

	"inklusi/internal/verification/models"
	"inklusi/pkg/domain"
	"inklusi/pkg/platform/sentinel"
)

// InMemoryStore holds verification requests behind a single mutex so the
// pending-only resolution check and the write happen atomically.
type InMemoryStore struct {
	mu       sync.Mutex
	requests map[domain.RequestID]*models.VerificationRequest
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{requests: make(map[domain.RequestID]*models.VerificationRequest)}
}

// Create inserts a pending request. Returns sentinel.ErrConflict when the
// target already has an unresolved request.
func (s *InMemoryStore) Create(ctx context.Context, req *models.VerificationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.requests {
		if existing.TargetType == req.TargetType && existing.TargetID == req.TargetID && !existing.IsResolved() {
			return sentinel.ErrConflict
		}
	}
	cp := *req
	s.requests[req.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(ctx context.Context, id domain.RequestID) (*models.VerificationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

// ResolveIfPending performs the compare-and-set transition: it succeeds only
// if the request is still pending, so concurrent reviewers cannot both win.
// Returns the resolved request on success.
func (s *InMemoryStore) ResolveIfPending(ctx context.Context, id domain.RequestID, decision models.Decision, notes string, resolvedBy domain.AdminID, now time.Time) (*models.VerificationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if req.IsResolved() {
		return nil, sentinel.ErrAlreadyResolved
	}
	req.ApplyResolution(decision, notes, resolvedBy, now)
	cp := *req
	return &cp, nil
}

// ListPending returns unresolved requests oldest-first, optionally filtered
// by target type.
func (s *InMemoryStore) ListPending(ctx context.Context, targetType models.TargetType) ([]*models.VerificationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.VerificationRequest
	for _, req := range s.requests {
		if req.IsResolved() {
			continue
		}
		if targetType != "" && req.TargetType != targetType {
			continue
		}
		cp := *req
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ListByTarget returns every request ever filed for a target, newest-first.
func (s *InMemoryStore) ListByTarget(ctx context.Context, targetType models.TargetType, targetID domain.InstitutionID) ([]*models.VerificationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.VerificationRequest
	for _, req := range s.requests {
		if req.TargetType == targetType && req.TargetID == targetID {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
