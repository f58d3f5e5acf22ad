// Package counter keeps an academy document's total_reviews field in
// step with the raw review collection as new reviews land between batch
// runs. It runs against the persisted store only, so it may race with a
// batch run; last-writer-wins on the academy document is acceptable.
package counter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hakwonmap/academy-reputation/internal/docstore"
	"github.com/hakwonmap/academy-reputation/internal/monitoring"
)

// ReviewCreatedEvent is the payload delivered when a new review document
// is created.
type ReviewCreatedEvent struct {
	ReviewID    string `json:"review_id"`
	AcademyName string `json:"academy_name"`
}

// Service recomputes per-academy review counts on review creation.
type Service struct {
	store   docstore.Store
	metrics *monitoring.Registry
}

// NewService creates a counter service. metrics may be nil.
func NewService(store docstore.Store, metrics *monitoring.Registry) *Service {
	return &Service{store: store, metrics: metrics}
}

// HandleReviewCreated recounts the academy's reviews and updates its
// reputation document. A missing academy document is logged and skipped:
// the next batch run will create it with the right count.
func (s *Service) HandleReviewCreated(ctx context.Context, event ReviewCreatedEvent) error {
	if event.AcademyName == "" {
		slog.Error("Review created event has no academy_name, skipping update",
			"review_id", event.ReviewID)
		return nil
	}

	logger := slog.With("academy_name", event.AcademyName, "review_id", event.ReviewID)
	logger.Info("New review created")

	total, err := s.store.CountReviews(ctx, event.AcademyName)
	if err != nil {
		return fmt.Errorf("failed to count reviews for %s: %w", event.AcademyName, err)
	}
	logger.Info("Recounted reviews", "total_reviews", total)

	err = s.store.UpdateAcademyReviewCount(ctx, event.AcademyName, total)
	if errors.Is(err, docstore.ErrNotFound) {
		logger.Warn("Academy document does not exist yet, skipping count update")
		if s.metrics != nil {
			s.metrics.CountSkips.Inc()
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to update review count for %s: %w", event.AcademyName, err)
	}

	if s.metrics != nil {
		s.metrics.CountUpdates.Inc()
	}
	logger.Info("Updated total_reviews", "total_reviews", total)
	return nil
}
