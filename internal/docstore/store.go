// Package docstore persists the batch pipeline's output as one JSON
// document per record: raw reviews keyed by stringified review_id and
// academy reputation rows keyed by academy name. The query service and
// the review-count updater read through the same interface, so a batch
// run and a live count update may race on an academy document;
// last-writer-wins is acceptable at this boundary.
package docstore

import (
	"context"
	"errors"

	"github.com/hakwonmap/academy-reputation/internal/model"
)

// Collection names, shared by every implementation.
const (
	ReviewCollection  = "raw_reviews"
	AcademyCollection = "academy_reputations"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Store is the document store boundary.
type Store interface {
	// PutReview upserts one raw review document, all fields verbatim.
	PutReview(ctx context.Context, review model.Review) error

	// PutAcademy upserts one academy reputation document.
	PutAcademy(ctx context.Context, academy model.Academy) error

	// GetAcademy fetches one academy document or ErrNotFound.
	GetAcademy(ctx context.Context, academyName string) (*model.Academy, error)

	// ListAcademies returns every academy document sorted descending by
	// reputation_score_100.
	ListAcademies(ctx context.Context) ([]model.Academy, error)

	// ListReviewsByAcademy returns the review documents whose
	// academy_name matches exactly.
	ListReviewsByAcademy(ctx context.Context, academyName string) ([]model.Review, error)

	// CountReviews counts the stored review documents for one academy.
	CountReviews(ctx context.Context, academyName string) (int, error)

	// UpdateAcademyReviewCount rewrites an academy document's
	// total_reviews field, or returns ErrNotFound.
	UpdateAcademyReviewCount(ctx context.Context, academyName string, totalReviews int) error

	Close() error
}
