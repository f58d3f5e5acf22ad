package docstore

import (
	"context"
	"sync"

	"github.com/hakwonmap/academy-reputation/internal/model"
)

// MemoryStore implements Store in memory. Tests and local runs use it in
// place of the bucket-backed store.
type MemoryStore struct {
	mutex     sync.RWMutex
	reviews   map[string]model.Review
	academies map[string]model.Academy
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reviews:   make(map[string]model.Review),
		academies: make(map[string]model.Academy),
	}
}

// PutReview upserts one raw review document.
func (s *MemoryStore) PutReview(ctx context.Context, review model.Review) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.reviews[review.DocumentID()] = review
	return nil
}

// PutAcademy upserts one academy reputation document.
func (s *MemoryStore) PutAcademy(ctx context.Context, academy model.Academy) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.academies[academy.AcademyName] = academy
	return nil
}

// GetAcademy fetches one academy document or ErrNotFound.
func (s *MemoryStore) GetAcademy(ctx context.Context, academyName string) (*model.Academy, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	academy, ok := s.academies[academyName]
	if !ok {
		return nil, ErrNotFound
	}
	return &academy, nil
}

// ListAcademies returns every academy document sorted descending by
// reputation score.
func (s *MemoryStore) ListAcademies(ctx context.Context) ([]model.Academy, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	academies := make([]model.Academy, 0, len(s.academies))
	for _, a := range s.academies {
		academies = append(academies, a)
	}
	sortAcademiesByScore(academies)
	return academies, nil
}

// ListReviewsByAcademy returns the review documents whose academy_name
// matches exactly.
func (s *MemoryStore) ListReviewsByAcademy(ctx context.Context, academyName string) ([]model.Review, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var reviews []model.Review
	for _, r := range s.reviews {
		if r.AcademyName == academyName {
			reviews = append(reviews, r)
		}
	}
	sortReviewsByID(reviews)
	return reviews, nil
}

// CountReviews counts the stored review documents for one academy.
func (s *MemoryStore) CountReviews(ctx context.Context, academyName string) (int, error) {
	reviews, err := s.ListReviewsByAcademy(ctx, academyName)
	if err != nil {
		return 0, err
	}
	return len(reviews), nil
}

// UpdateAcademyReviewCount rewrites an academy document's total_reviews
// field, or returns ErrNotFound.
func (s *MemoryStore) UpdateAcademyReviewCount(ctx context.Context, academyName string, totalReviews int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	academy, ok := s.academies[academyName]
	if !ok {
		return ErrNotFound
	}
	academy.TotalReviews = totalReviews
	s.academies[academyName] = academy
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
