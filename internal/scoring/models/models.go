// Package models defines peer inclusion ratings, the derived company
// scorecard, and the static cluster score contract.
package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"inklusi/pkg/domain"
	dErrors "inklusi/pkg/domain-errors"
)

// DimensionScores are the four rated aspects of working at a company,
// each on a 1..5 scale.
type DimensionScores struct {
	Accessibility int
	Culture       int
	Management    int
	Onboarding    int
}

func (d DimensionScores) validate() error {
	for _, dim := range []struct {
		name  string
		value int
	}{
		{"accessibility", d.Accessibility},
		{"culture", d.Culture},
		{"management", d.Management},
		{"onboarding", d.Onboarding},
	} {
		if dim.value < 1 || dim.value > 5 {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s score must be between 1 and 5", dim.name))
		}
	}
	return nil
}

// InclusionRating is a talent's one-time rating of a specific employment
// relationship. Immutable once stored; there is no edit or delete path.
type InclusionRating struct {
	ID        domain.RatingID
	CompanyID domain.CompanyID
	TalentID  domain.TalentID
	JobID     domain.JobID
	Scores    DimensionScores
	Comment   string
	CreatedAt time.Time
}

// NewInclusionRating validates and constructs a rating.
func NewInclusionRating(companyID domain.CompanyID, talentID domain.TalentID, jobID domain.JobID, scores DimensionScores, comment string, now time.Time) (*InclusionRating, error) {
	if companyID.IsNil() || talentID.IsNil() || jobID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "company, talent and job are required")
	}
	if err := scores.validate(); err != nil {
		return nil, err
	}
	return &InclusionRating{
		ID:        domain.NewRatingID(),
		CompanyID: companyID,
		TalentID:  talentID,
		JobID:     jobID,
		Scores:    scores,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now,
	}, nil
}

// Scorecard is the derived per-company aggregate. It is a pure function of
// the rating set; every field is 0 when no ratings exist, never null, so
// display code stays total.
type Scorecard struct {
	CompanyID     domain.CompanyID `json:"company_id"`
	Accessibility float64          `json:"accessibility"`
	Culture       float64          `json:"culture"`
	Management    float64          `json:"management"`
	Onboarding    float64          `json:"onboarding"`
	Overall       float64          `json:"overall"`
	RatingCount   int              `json:"rating_count"`
	ComputedAt    time.Time        `json:"computed_at"`
}

// ComputeScorecard recomputes the aggregate from the full rating set.
//
// Full recomputation, not incremental accumulation: the means carry their
// count implicitly, so a future retraction path can rebuild the card from
// the surviving rows without drift. Each dimension average is the arithmetic
// mean of that dimension; Overall is the mean of the four dimension means.
func ComputeScorecard(companyID domain.CompanyID, ratings []*InclusionRating, now time.Time) Scorecard {
	card := Scorecard{CompanyID: companyID, RatingCount: len(ratings), ComputedAt: now}
	if len(ratings) == 0 {
		return card
	}

	var accessibility, culture, management, onboarding int
	for _, r := range ratings {
		accessibility += r.Scores.Accessibility
		culture += r.Scores.Culture
		management += r.Scores.Management
		onboarding += r.Scores.Onboarding
	}
	n := float64(len(ratings))
	card.Accessibility = float64(accessibility) / n
	card.Culture = float64(culture) / n
	card.Management = float64(management) / n
	card.Onboarding = float64(onboarding) / n
	card.Overall = (card.Accessibility + card.Culture + card.Management + card.Onboarding) / 4
	return card
}

// Cluster score weights. These three weights in this order are a published
// contract consumed by public ranking displays; any recomputation from raw
// survey data must use exactly these.
const (
	WeightPhysical = 0.30
	WeightDigital  = 0.40
	WeightOutput   = 0.30
)

// ClusterScore is a campus/partner's weighted inclusion index, each component
// 0..100. Computed by an external batch process; this subsystem validates and
// displays it.
type ClusterScore struct {
	Overall  int `json:"overall"`
	Physical int `json:"physical"`
	Digital  int `json:"digital"`
	Output   int `json:"output"`
}

// Validate checks the weighting contract within a tolerance of 1: integer
// rounding from three independently rounded contributors can land one off
// from a direct computation.
func (s ClusterScore) Validate() error {
	for _, c := range []struct {
		name  string
		value int
	}{
		{"overall", s.Overall},
		{"physical", s.Physical},
		{"digital", s.Digital},
		{"output", s.Output},
	} {
		if c.value < 0 || c.value > 100 {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be between 0 and 100", c.name))
		}
	}

	expected := math.Round(WeightPhysical*float64(s.Physical) + WeightDigital*float64(s.Digital) + WeightOutput*float64(s.Output))
	if math.Abs(expected-float64(s.Overall)) > 1 {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("overall %d does not match weighted components (expected %d)", s.Overall, int(expected)))
	}
	return nil
}
