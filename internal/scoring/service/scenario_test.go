package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inklusi/internal/scoring/models"
	"inklusi/pkg/domain"
	"inklusi/pkg/testutil"
)

// A scorecard must always reflect every stored rating, no matter how reads
// and writes interleave with the cache.
func TestScorecardStaysFreshAcrossWrites(t *testing.T) {
	ctx := testutil.FixedTimeContext(frozenNow)
	svc, scorecardCache := newService(t)
	companyID := domain.NewCompanyID()

	testutil.Given(t, "a company with one cached scorecard", func(t *testing.T) {
		_, err := svc.SubmitRating(ctx, companyID, domain.NewTalentID(), domain.NewJobID(), models.DimensionScores{
			Accessibility: 2, Culture: 2, Management: 2, Onboarding: 2,
		}, "")
		require.NoError(t, err)

		card, err := svc.GetScorecard(ctx, companyID)
		require.NoError(t, err)
		require.Equal(t, 2.0, card.Overall)
		require.True(t, scorecardCache.Contains(companyID))
	})

	testutil.When(t, "a second talent submits a higher rating", func(t *testing.T) {
		_, err := svc.SubmitRating(ctx, companyID, domain.NewTalentID(), domain.NewJobID(), models.DimensionScores{
			Accessibility: 4, Culture: 4, Management: 4, Onboarding: 4,
		}, "")
		require.NoError(t, err)
		require.False(t, scorecardCache.Contains(companyID), "write must evict the cached scorecard")
	})

	testutil.Then(t, "the next read recomputes from the full rating set", func(t *testing.T) {
		card, err := svc.GetScorecard(ctx, companyID)
		require.NoError(t, err)
		assert.Equal(t, 3.0, card.Overall)
		assert.Equal(t, 3.0, card.Accessibility)
		assert.Equal(t, 2, card.RatingCount)
		assert.True(t, scorecardCache.Contains(companyID))
	})
}
