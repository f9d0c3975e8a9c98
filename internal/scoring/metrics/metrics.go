package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks rating submissions and scorecard cache behavior.
type Metrics struct {
	RatingsSubmitted  prometheus.Counter
	DuplicateRatings  prometheus.Counter
	Recomputations    prometheus.Counter
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	ClusterViolations prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RatingsSubmitted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "scoring_ratings_submitted_total",
			Help: "Inclusion ratings accepted.",
		}),
		DuplicateRatings: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "scoring_duplicate_ratings_total",
			Help: "Rating submissions rejected as duplicates of an existing tuple.",
		}),
		Recomputations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "scoring_scorecard_recomputations_total",
			Help: "Full scorecard recomputations from the rating set.",
		}),
		CacheHits: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "scoring_scorecard_cache_hits_total",
			Help: "Scorecard reads served from cache.",
		}),
		CacheMisses: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "scoring_scorecard_cache_misses_total",
			Help: "Scorecard reads that fell through to recomputation.",
		}),
		ClusterViolations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "scoring_cluster_score_violations_total",
			Help: "Cluster scores that failed the weighting contract check.",
		}),
	}
}
