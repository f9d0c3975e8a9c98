// Package cache holds the scorecard cache contract and implementations.
//
// The cache is a read accelerator only: every rating write invalidates the
// company's entry, so a committed rating is visible to all subsequent
// scorecard reads. A miss or an unavailable backend falls through to a full
// recomputation.
package cache

import (
	"context"

	"inklusi/internal/scoring/models"
	"inklusi/pkg/domain"
)

// Cache stores computed scorecards per company.
type Cache interface {
	Get(ctx context.Context, companyID domain.CompanyID) (*models.Scorecard, bool, error)
	Set(ctx context.Context, card models.Scorecard) error
	Invalidate(ctx context.Context, companyID domain.CompanyID) error
}

// Noop disables caching; every read recomputes.
type Noop struct{}

func (Noop) Get(ctx context.Context, companyID domain.CompanyID) (*models.Scorecard, bool, error) {
	return nil, false, nil
}
func (Noop) Set(ctx context.Context, card models.Scorecard) error                 { return nil }
func (Noop) Invalidate(ctx context.Context, companyID domain.CompanyID) error { return nil }
