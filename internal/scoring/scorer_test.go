package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakwonmap/academy-reputation/internal/model"
)

func TestNewScorerValidatesWeights(t *testing.T) {
	_, err := NewScorer(DefaultWeights)
	assert.NoError(t, err)

	_, err = NewScorer(Weights{Rating: 0.5, Sentiment: 0.5, ReviewCount: 0.5})
	assert.Error(t, err)
}

func TestTheoreticalMax(t *testing.T) {
	// 0.4*5 + 0.2 + 0.2 + 0.1 + 0.1
	assert.InDelta(t, 2.6, DefaultWeights.TheoreticalMax(), 1e-12)
}

func TestScoreSingleAcademy(t *testing.T) {
	s, err := NewScorer(DefaultWeights)
	require.NoError(t, err)

	// One academy, one perfect review with neutral sentiment: the
	// normalized factors collapse to their endpoints and the raw score
	// is 0.4*5 + 0.2*0.5 + 0.2*1 + 0.1*1 + 0.1*1 = 2.5.
	out := s.Score([]model.Academy{{
		AcademyName:         "A학원",
		TotalReviews:        1,
		AvgRating:           5.0,
		AvgSentimentScore:   0.0,
		AvgReviewTrustScore: 1.0,
		MinDaysSinceReview:  0,
	}})
	require.Len(t, out, 1)

	assert.InDelta(t, 2.5, out[0].RawReputationScore, 1e-9)
	assert.InDelta(t, 2.5/2.6*100, out[0].ReputationScore100, 1e-9)
	assert.InDelta(t, 96.15, out[0].ReputationScore100, 0.01)
	assert.Equal(t, 1.0, out[0].NormalizedReviewCount)
	assert.Equal(t, 1.0, out[0].NormalizedFreshness)
}

func TestScoreNormalization(t *testing.T) {
	s, err := NewScorer(DefaultWeights)
	require.NoError(t, err)

	out := s.Score([]model.Academy{
		{AcademyName: "A학원", TotalReviews: 10, AvgRating: 4, MinDaysSinceReview: 0},
		{AcademyName: "B학원", TotalReviews: 5, AvgRating: 4, MinDaysSinceReview: 20},
		{AcademyName: "C학원", TotalReviews: 2, AvgRating: 4, MinDaysSinceReview: 40},
	})
	require.Len(t, out, 3)

	byName := make(map[string]model.Academy, 3)
	for _, a := range out {
		byName[a.AcademyName] = a
	}

	assert.Equal(t, 1.0, byName["A학원"].NormalizedReviewCount)
	assert.Equal(t, 0.5, byName["B학원"].NormalizedReviewCount)
	assert.Equal(t, 0.2, byName["C학원"].NormalizedReviewCount)

	// Largest minimum gap gets freshness 0; a review today gets 1.
	assert.Equal(t, 1.0, byName["A학원"].NormalizedFreshness)
	assert.Equal(t, 0.5, byName["B학원"].NormalizedFreshness)
	assert.Equal(t, 0.0, byName["C학원"].NormalizedFreshness)
}

func TestScoreAllFreshGuardsDivision(t *testing.T) {
	s, err := NewScorer(DefaultWeights)
	require.NoError(t, err)

	// Every academy reviewed today: max(min_days) is 0 and freshness
	// resolves to the 1.0 endpoint instead of dividing by zero.
	out := s.Score([]model.Academy{
		{AcademyName: "A학원", TotalReviews: 1, AvgRating: 4, MinDaysSinceReview: 0},
		{AcademyName: "B학원", TotalReviews: 2, AvgRating: 4, MinDaysSinceReview: 0},
	})
	for _, a := range out {
		assert.Equal(t, 1.0, a.NormalizedFreshness)
		assert.False(t, a.ReputationScore100 != a.ReputationScore100, "score must not be NaN")
	}
}

func TestScoreRankingAndTies(t *testing.T) {
	s, err := NewScorer(DefaultWeights)
	require.NoError(t, err)

	out := s.Score([]model.Academy{
		{AcademyName: "다학원", TotalReviews: 2, AvgRating: 3.0, MinDaysSinceReview: 5},
		{AcademyName: "가학원", TotalReviews: 2, AvgRating: 3.0, MinDaysSinceReview: 5},
		{AcademyName: "나학원", TotalReviews: 2, AvgRating: 5.0, MinDaysSinceReview: 5},
	})
	require.Len(t, out, 3)

	assert.Equal(t, "나학원", out[0].AcademyName)
	// Identical scores break ties alphabetically.
	assert.Equal(t, "가학원", out[1].AcademyName)
	assert.Equal(t, "다학원", out[2].AcademyName)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].ReputationScore100, out[i].ReputationScore100)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s, err := NewScorer(DefaultWeights)
	require.NoError(t, err)

	in := []model.Academy{
		{AcademyName: "A학원", TotalReviews: 3, AvgRating: 4.2, AvgSentimentScore: 0.4, AvgReviewTrustScore: 0.6, MinDaysSinceReview: 2},
		{AcademyName: "B학원", TotalReviews: 7, AvgRating: 3.8, AvgSentimentScore: -0.1, AvgReviewTrustScore: 0.5, MinDaysSinceReview: 9},
	}

	first := s.Score(in)
	second := s.Score(in)
	assert.Equal(t, first, second)
}

func TestScoreEmptyBatch(t *testing.T) {
	s, err := NewScorer(DefaultWeights)
	require.NoError(t, err)
	assert.Empty(t, s.Score(nil))
}
