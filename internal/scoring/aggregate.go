package scoring

import (
	"sort"

	"github.com/hakwonmap/academy-reputation/internal/model"
)

// Aggregate groups scored reviews by exact academy name and computes the
// per-academy summary statistics. Callers must have dropped reviews
// without a valid timestamp already; every review seen here contributes
// to the aggregates.
//
// Grouping is exact string equality: whitespace or case variants of the
// same academy produce distinct rows. That mirrors the scraped data and
// is a documented limitation, not something to silently normalize here.
func Aggregate(reviews []model.ScoredReview) []model.Academy {
	type acc struct {
		count     int
		sumRating float64
		sumTrust  float64
		sumSent   float64
		minDays   int
	}

	groups := make(map[string]*acc)
	for _, r := range reviews {
		g, ok := groups[r.AcademyName]
		if !ok {
			g = &acc{minDays: r.DaysSinceReview}
			groups[r.AcademyName] = g
		}
		g.count++
		g.sumRating += r.Rating
		g.sumTrust += r.ReviewTrustScore
		g.sumSent += r.SentimentScore
		if r.DaysSinceReview < g.minDays {
			g.minDays = r.DaysSinceReview
		}
	}

	academies := make([]model.Academy, 0, len(groups))
	for name, g := range groups {
		n := float64(g.count)
		academies = append(academies, model.Academy{
			AcademyName:         name,
			TotalReviews:        g.count,
			AvgRating:           g.sumRating / n,
			AvgReviewTrustScore: g.sumTrust / n,
			AvgSentimentScore:   g.sumSent / n,
			MinDaysSinceReview:  g.minDays,
		})
	}

	// Map iteration order is random; fix it for reproducible output.
	sort.Slice(academies, func(i, j int) bool {
		return academies[i].AcademyName < academies[j].AcademyName
	})
	return academies
}
