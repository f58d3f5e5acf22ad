package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/hakwonmap/academy-reputation/internal/model"
)

// maxRating is the ceiling of the portals' star scale.
const maxRating = 5.0

// Weights is the reputation formula's weight table. The weights must sum
// to 1.0; NewScorer rejects anything else.
type Weights struct {
	Rating      float64
	Sentiment   float64
	ReviewCount float64
	Freshness   float64
	Trust       float64
}

// DefaultWeights is the production weight table.
var DefaultWeights = Weights{
	Rating:      0.4,
	Sentiment:   0.2,
	ReviewCount: 0.2,
	Freshness:   0.1,
	Trust:       0.1,
}

func (w Weights) sum() float64 {
	return w.Rating + w.Sentiment + w.ReviewCount + w.Freshness + w.Trust
}

// TheoreticalMax is the raw score when every factor sits at its ceiling:
// rating at 5.0 and every normalized factor at 1.0. Deriving it from the
// weight table keeps the 0-100 rescale honest if weights ever change.
// For DefaultWeights this is 2.6.
func (w Weights) TheoreticalMax() float64 {
	return w.Rating*maxRating + w.Sentiment + w.ReviewCount + w.Freshness + w.Trust
}

// Scorer turns academy aggregates into ranked reputation scores.
type Scorer struct {
	weights Weights
}

// NewScorer validates the weight table and returns a scorer.
func NewScorer(w Weights) (*Scorer, error) {
	if s := w.sum(); math.Abs(s-1.0) > 1e-9 {
		return nil, fmt.Errorf("reputation weights must sum to 1.0, got %v", s)
	}
	return &Scorer{weights: w}, nil
}

// Score normalizes the batch-relative factors, applies the weighted
// formula, and rescales against the theoretical maximum. The result is
// sorted descending by ReputationScore100 with academy name as the
// deterministic tiebreak.
//
// Every academy here has at least one valid review, so the review-count
// maximum is never zero. The freshness maximum can be zero when every
// academy's newest review is from today; that degenerates to freshness
// 1.0 for everyone rather than a division by zero.
func (s *Scorer) Score(academies []model.Academy) []model.Academy {
	if len(academies) == 0 {
		return academies
	}

	maxReviews := 0
	maxDays := 0
	for _, a := range academies {
		if a.TotalReviews > maxReviews {
			maxReviews = a.TotalReviews
		}
		if a.MinDaysSinceReview > maxDays {
			maxDays = a.MinDaysSinceReview
		}
	}

	theoreticalMax := s.weights.TheoreticalMax()
	out := make([]model.Academy, len(academies))
	for i, a := range academies {
		a.NormalizedReviewCount = float64(a.TotalReviews) / float64(maxReviews)
		if maxDays == 0 {
			a.NormalizedFreshness = 1.0
		} else {
			a.NormalizedFreshness = 1.0 - float64(a.MinDaysSinceReview)/float64(maxDays)
		}

		a.RawReputationScore = s.weights.Rating*a.AvgRating +
			s.weights.Sentiment*(a.AvgSentimentScore+1)/2 +
			s.weights.ReviewCount*a.NormalizedReviewCount +
			s.weights.Freshness*a.NormalizedFreshness +
			s.weights.Trust*a.AvgReviewTrustScore

		// Not clamped: the rescale can only exceed 100 if an input
		// escapes its theoretical bound, and that should be visible.
		a.ReputationScore100 = a.RawReputationScore / theoreticalMax * 100
		out[i] = a
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ReputationScore100 != out[j].ReputationScore100 {
			return out[i].ReputationScore100 > out[j].ReputationScore100
		}
		return out[i].AcademyName < out[j].AcademyName
	})
	return out
}
