package scoring

import (
	"github.com/hakwonmap/academy-reputation/internal/model"
)

// Per-review trust constants.
const (
	repetitiveAuthorTrust = 0.1
	uniqueAuthorTrust     = 1.0
	mismatchTrust         = 0.2
	consistentTrust       = 1.0

	// A rating this high paired with sentiment this negative flags a
	// rating/text mismatch (possible fraud or miscalibration).
	discrepancyRating    = 4.0
	discrepancySentiment = -0.5
)

// Engine computes the per-review feature scores. Sentiment and content
// trust are pluggable TextScorer strategies; author and discrepancy trust
// are fixed rules.
type Engine struct {
	sentiment TextScorer
	content   TextScorer
}

// NewEngine returns an engine with the default keyword heuristics.
func NewEngine() *Engine {
	return &Engine{
		sentiment: NewKeywordSentiment(),
		content:   NewContentTrust(),
	}
}

// NewEngineWithScorers builds an engine with custom strategies.
func NewEngineWithScorers(sentiment, content TextScorer) *Engine {
	return &Engine{sentiment: sentiment, content: content}
}

// ScoreBatch computes the five feature scores for every review in the
// batch. Repetitive detection is batch-wide and symmetric: every member
// of a duplicate (text, source_file) group is flagged, including the
// first occurrence.
func (e *Engine) ScoreBatch(reviews []model.Review) []model.ScoredReview {
	type dupKey struct {
		text   string
		source string
	}
	seen := make(map[dupKey]int, len(reviews))
	for _, r := range reviews {
		seen[dupKey{r.Text, r.SourceFile}]++
	}

	scored := make([]model.ScoredReview, 0, len(reviews))
	for _, r := range reviews {
		sr := model.ScoredReview{Review: r}

		sr.ContentTrustScore = e.content.Score(r.Text)
		sr.IsRepetitive = seen[dupKey{r.Text, r.SourceFile}] > 1
		if sr.IsRepetitive {
			sr.AuthorTrustScore = repetitiveAuthorTrust
		} else {
			sr.AuthorTrustScore = uniqueAuthorTrust
		}
		sr.SentimentScore = e.sentiment.Score(r.Text)
		sr.DiscrepancyTrust = discrepancyTrust(r.Rating, sr.SentimentScore)

		// Sentiment is aggregated as its own signal, never multiplied in.
		sr.ReviewTrustScore = sr.ContentTrustScore * sr.AuthorTrustScore * sr.DiscrepancyTrust

		scored = append(scored, sr)
	}
	return scored
}

func discrepancyTrust(rating, sentiment float64) float64 {
	if rating >= discrepancyRating && sentiment < discrepancySentiment {
		return mismatchTrust
	}
	return consistentTrust
}
