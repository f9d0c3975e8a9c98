// Package service implements rating submission, scorecard aggregation, and
// the cluster score weighting check.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"inklusi/internal/scoring/cache"
	"inklusi/internal/scoring/metrics"
	"inklusi/internal/scoring/models"
	"inklusi/pkg/domain"
	dErrors "inklusi/pkg/domain-errors"
	"inklusi/pkg/platform/audit"
	"inklusi/pkg/platform/sentinel"
	"inklusi/pkg/platform/tx"
	"inklusi/pkg/requestcontext"
)

// RatingStore persists inclusion ratings. Insert must reject a second rating
// for the same (talent, company, job) tuple with sentinel.ErrConflict.
type RatingStore interface {
	Insert(ctx context.Context, r *models.InclusionRating) error
	FindByTuple(ctx context.Context, talentID domain.TalentID, companyID domain.CompanyID, jobID domain.JobID) (*models.InclusionRating, error)
	ListByCompany(ctx context.Context, companyID domain.CompanyID) ([]*models.InclusionRating, error)
}

type Service struct {
	ratings RatingStore
	cache   cache.Cache
	runner  tx.Runner

	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   audit.Publisher
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func New(ratings RatingStore, scorecardCache cache.Cache, runner tx.Runner, opts ...Option) (*Service, error) {
	if ratings == nil {
		return nil, fmt.Errorf("rating store is required")
	}
	if scorecardCache == nil {
		scorecardCache = cache.Noop{}
	}
	if runner == nil {
		runner = tx.PassthroughRunner{}
	}
	s := &Service{
		ratings: ratings,
		cache:   scorecardCache,
		runner:  runner,
		logger:  slog.Default(),
		tracer:  otel.Tracer("inklusi/scoring"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SubmitRating records a talent's one-time rating of an employment
// relationship and invalidates the company's cached scorecard.
//
// The insert and its audit record are one transaction. A transient store
// failure is retried once with the same rating ID; if the first attempt
// actually committed, the retry finds our own row and reports success.
func (s *Service) SubmitRating(ctx context.Context, companyID domain.CompanyID, talentID domain.TalentID, jobID domain.JobID, scores models.DimensionScores, comment string) (*models.InclusionRating, error) {
	ctx, span := s.tracer.Start(ctx, "scoring.submit_rating",
		trace.WithAttributes(attribute.String("company.id", companyID.String())))
	defer span.End()

	rating, err := models.NewInclusionRating(companyID, talentID, jobID, scores, comment, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	err = s.insertOnce(ctx, rating)
	if isTransient(err) {
		s.logger.WarnContext(ctx, "rating insert retrying after transient store error",
			"rating_id", rating.ID.String(), "error", err)
		err = s.insertOnce(ctx, rating)
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			// The first attempt may have committed before the error surfaced.
			if existing, findErr := s.ratings.FindByTuple(ctx, talentID, companyID, jobID); findErr == nil && existing.ID == rating.ID {
				err = nil
			}
		}
	}
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) && s.metrics != nil {
			s.metrics.DuplicateRatings.Inc()
		}
		return nil, err
	}

	// Invalidation cannot be rolled into the insert transaction; a failure
	// here leaves the TTL as the staleness bound, so it is logged loudly.
	if err := s.cache.Invalidate(ctx, companyID); err != nil {
		s.logger.ErrorContext(ctx, "scorecard cache invalidation failed",
			"company_id", companyID.String(), "error", err)
	}

	if s.metrics != nil {
		s.metrics.RatingsSubmitted.Inc()
	}
	s.logger.InfoContext(ctx, "inclusion rating submitted",
		"rating_id", rating.ID.String(),
		"company_id", companyID.String(),
	)
	return rating, nil
}

func (s *Service) insertOnce(ctx context.Context, rating *models.InclusionRating) error {
	return s.runner.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ratings.Insert(txCtx, rating); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "a rating already exists for this employment relationship")
			}
			return fmt.Errorf("insert rating: %w", err)
		}
		return s.emitAudit(txCtx, rating)
	})
}

// GetScorecard returns the company's aggregate, served from cache when a
// valid entry exists and recomputed from the full rating set otherwise.
// Companies with no ratings get a zeroed card, never an absent one.
func (s *Service) GetScorecard(ctx context.Context, companyID domain.CompanyID) (models.Scorecard, error) {
	if companyID.IsNil() {
		return models.Scorecard{}, dErrors.New(dErrors.CodeInvalidInput, "company id is required")
	}

	cached, ok, err := s.cache.Get(ctx, companyID)
	if err != nil {
		s.logger.WarnContext(ctx, "scorecard cache read failed, recomputing",
			"company_id", companyID.String(), "error", err)
	}
	if ok {
		if s.metrics != nil {
			s.metrics.CacheHits.Inc()
		}
		return *cached, nil
	}
	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}

	ratings, err := s.ratings.ListByCompany(ctx, companyID)
	if err != nil {
		return models.Scorecard{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not load ratings")
	}
	card := models.ComputeScorecard(companyID, ratings, requestcontext.Now(ctx))
	if s.metrics != nil {
		s.metrics.Recomputations.Inc()
	}

	if err := s.cache.Set(ctx, card); err != nil {
		s.logger.WarnContext(ctx, "scorecard cache write failed",
			"company_id", companyID.String(), "error", err)
	}
	return card, nil
}

// ValidateClusterScore checks a batch-computed campus/partner score against
// the published weighting contract.
func (s *Service) ValidateClusterScore(ctx context.Context, score models.ClusterScore) error {
	if err := score.Validate(); err != nil {
		if s.metrics != nil {
			s.metrics.ClusterViolations.Inc()
		}
		s.logger.WarnContext(ctx, "cluster score failed weighting check",
			"overall", score.Overall,
			"physical", score.Physical,
			"digital", score.Digital,
			"output", score.Output,
		)
		return err
	}
	return nil
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	for _, code := range []dErrors.Code{
		dErrors.CodeConflict, dErrors.CodeValidation, dErrors.CodeInvalidInput,
	} {
		if dErrors.HasCode(err, code) {
			return false
		}
	}
	return true
}

func (s *Service) emitAudit(ctx context.Context, rating *models.InclusionRating) error {
	if s.audit == nil {
		return nil
	}
	return s.audit.Emit(ctx, audit.Event{
		Category:     audit.EventRatingSubmitted.Category(),
		Timestamp:    requestcontext.Now(ctx),
		Action:       string(audit.EventRatingSubmitted),
		Subject:      rating.CompanyID.String(),
		RequestID:    requestcontext.RequestID(ctx),
		DeviceFamily: requestcontext.DeviceFamily(ctx),
	})
}
