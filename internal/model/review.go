package model

import "strconv"

// Review is one scraped customer review for an academy, as stored in the
// reviews table. DateCreated is kept raw (relative Korean date strings like
// "3일 전" or absolute dates) and normalized by the pipeline.
type Review struct {
	ReviewID    int64   `json:"review_id" db:"review_id"`
	AcademyName string  `json:"academy_name" db:"academy_name"`
	Rating      float64 `json:"rating" db:"rating"`
	Text        string  `json:"text" db:"text"`
	DateCreated string  `json:"date_created" db:"date_created"`
	SourceFile  string  `json:"source_file" db:"source_file"`
}

// DocumentID returns the stringified review ID used as the document key.
func (r Review) DocumentID() string {
	return strconv.FormatInt(r.ReviewID, 10)
}

// ScoredReview carries the per-review features computed by the scoring
// engine. These exist only for the duration of one batch run.
type ScoredReview struct {
	Review

	ContentTrustScore float64
	IsRepetitive      bool
	AuthorTrustScore  float64
	SentimentScore    float64
	DiscrepancyTrust  float64
	ReviewTrustScore  float64
	DaysSinceReview   int
}
