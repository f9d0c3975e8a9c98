// Package adapters bridges the verification workflow to its neighboring
// features without importing their service types directly.
package adapters

import (
	"context"

	gatemodels "inklusi/internal/accessgate/models"
	gateservice "inklusi/internal/accessgate/service"
	"inklusi/internal/verification/service"
)

// GateAdapter lets the verification service authorize reviewers through the
// access gate choke point.
type GateAdapter struct {
	gate *gateservice.Service
}

func NewGateAdapter(gate *gateservice.Service) *GateAdapter {
	return &GateAdapter{gate: gate}
}

func (a *GateAdapter) AuthorizeReviewer(ctx context.Context, email string) (service.Reviewer, error) {
	entry, err := a.gate.Identify(ctx, email, gatemodels.ActionReviewVerification)
	if err != nil {
		return service.Reviewer{}, err
	}
	return service.Reviewer{ID: entry.ID, Email: entry.Email}, nil
}
