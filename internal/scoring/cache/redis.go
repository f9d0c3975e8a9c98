package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	platformredis "inklusi/internal/platform/redis"
	"inklusi/internal/scoring/models"
	"inklusi/pkg/domain"
)

const defaultTTL = 15 * time.Minute

// Redis caches scorecards as JSON values keyed per company. The TTL is a
// safety net; correctness comes from Invalidate on every rating write.
type Redis struct {
	client *platformredis.Client
	ttl    time.Duration
}

func NewRedis(client *platformredis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

func scorecardKey(companyID domain.CompanyID) string {
	return "scorecard:" + companyID.String()
}

func (c *Redis) Get(ctx context.Context, companyID domain.CompanyID) (*models.Scorecard, bool, error) {
	raw, err := c.client.Get(ctx, scorecardKey(companyID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("scorecard cache get: %w", err)
	}

	var card models.Scorecard
	if err := json.Unmarshal(raw, &card); err != nil {
		// Stale format from an older deploy; treat as a miss.
		return nil, false, nil
	}
	return &card, true, nil
}

func (c *Redis) Set(ctx context.Context, card models.Scorecard) error {
	raw, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("scorecard cache encode: %w", err)
	}
	if err := c.client.Set(ctx, scorecardKey(card.CompanyID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("scorecard cache set: %w", err)
	}
	return nil
}

func (c *Redis) Invalidate(ctx context.Context, companyID domain.CompanyID) error {
	if err := c.client.Del(ctx, scorecardKey(companyID)).Err(); err != nil {
		return fmt.Errorf("scorecard cache invalidate: %w", err)
	}
	return nil
}
