package cache

import (
	"context"
	"sync"

	"inklusi/internal/scoring/models"
	"inklusi/pkg/domain"
)

// Memory is a map-backed cache for tests and single-node runs.
type Memory struct {
	mu    sync.Mutex
	cards map[domain.CompanyID]models.Scorecard
}

func NewMemory() *Memory {
	return &Memory{cards: make(map[domain.CompanyID]models.Scorecard)}
}

func (c *Memory) Get(ctx context.Context, companyID domain.CompanyID) (*models.Scorecard, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	card, ok := c.cards[companyID]
	if !ok {
		return nil, false, nil
	}
	return &card, true, nil
}

func (c *Memory) Set(ctx context.Context, card models.Scorecard) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cards[card.CompanyID] = card
	return nil
}

func (c *Memory) Invalidate(ctx context.Context, companyID domain.CompanyID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cards, companyID)
	return nil
}

// Contains is a test helper.
func (c *Memory) Contains(companyID domain.CompanyID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.cards[companyID]
	return ok
}
