package model

// Academy is the per-academy aggregate produced by one batch run and
// published to the academy_reputations collection.
type Academy struct {
	AcademyName           string  `json:"academy_name" db:"academy_name"`
	TotalReviews          int     `json:"total_reviews" db:"total_reviews"`
	AvgRating             float64 `json:"avg_rating" db:"avg_rating"`
	AvgReviewTrustScore   float64 `json:"avg_review_trust_score" db:"avg_review_trust_score"`
	AvgSentimentScore     float64 `json:"avg_sentiment_score" db:"avg_sentiment_score"`
	MinDaysSinceReview    int     `json:"min_days_since_review" db:"min_days_since_review"`
	NormalizedReviewCount float64 `json:"normalized_review_count" db:"normalized_review_count"`
	NormalizedFreshness   float64 `json:"normalized_freshness" db:"normalized_freshness"`
	RawReputationScore    float64 `json:"raw_reputation_score" db:"raw_reputation_score"`
	ReputationScore100    float64 `json:"reputation_score_100" db:"reputation_score_100"`
}
