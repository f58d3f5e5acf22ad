package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/hakwonmap/academy-reputation/internal/model"
)

// GCSStore implements Store on a Cloud Storage bucket with one JSON
// object per document.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a document store backed by the named bucket.
func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// objectName builds the object path for a document. Keys are escaped
// because academy names carry spaces and arbitrary punctuation.
func objectName(collection, key string) string {
	return collection + "/" + url.PathEscape(key) + ".json"
}

func (s *GCSStore) put(ctx context.Context, collection, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document %s: %w", key, err)
	}

	obj := s.client.Bucket(s.bucket).Object(objectName(collection, key))
	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("writing document %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing writer for document %s: %w", key, err)
	}
	return nil
}

func (s *GCSStore) get(ctx context.Context, collection, key string, doc any) error {
	obj := s.client.Bucket(s.bucket).Object(objectName(collection, key))

	r, err := obj.NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return ErrNotFound
		}
		return fmt.Errorf("opening document %s: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading document %s: %w", key, err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("unmarshaling document %s: %w", key, err)
	}
	return nil
}

// PutReview upserts one raw review document, all fields verbatim.
func (s *GCSStore) PutReview(ctx context.Context, review model.Review) error {
	return s.put(ctx, ReviewCollection, review.DocumentID(), review)
}

// PutAcademy upserts one academy reputation document.
func (s *GCSStore) PutAcademy(ctx context.Context, academy model.Academy) error {
	return s.put(ctx, AcademyCollection, academy.AcademyName, academy)
}

// GetAcademy fetches one academy document or ErrNotFound.
func (s *GCSStore) GetAcademy(ctx context.Context, academyName string) (*model.Academy, error) {
	var academy model.Academy
	if err := s.get(ctx, AcademyCollection, academyName, &academy); err != nil {
		return nil, err
	}
	return &academy, nil
}

// ListAcademies returns every academy document sorted descending by
// reputation score. Object stores have no server-side ordering, so the
// sort happens here.
func (s *GCSStore) ListAcademies(ctx context.Context) ([]model.Academy, error) {
	var academies []model.Academy

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: AcademyCollection + "/"})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing academy documents: %w", err)
		}
		if !strings.HasSuffix(attrs.Name, ".json") {
			continue
		}

		var academy model.Academy
		if err := s.readObject(ctx, attrs.Name, &academy); err != nil {
			return nil, err
		}
		academies = append(academies, academy)
	}

	sortAcademiesByScore(academies)
	return academies, nil
}

// ListReviewsByAcademy returns the review documents whose academy_name
// matches exactly.
func (s *GCSStore) ListReviewsByAcademy(ctx context.Context, academyName string) ([]model.Review, error) {
	var reviews []model.Review

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: ReviewCollection + "/"})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing review documents: %w", err)
		}
		if !strings.HasSuffix(attrs.Name, ".json") {
			continue
		}

		var review model.Review
		if err := s.readObject(ctx, attrs.Name, &review); err != nil {
			return nil, err
		}
		if review.AcademyName == academyName {
			reviews = append(reviews, review)
		}
	}

	sortReviewsByID(reviews)
	return reviews, nil
}

// CountReviews counts the stored review documents for one academy.
func (s *GCSStore) CountReviews(ctx context.Context, academyName string) (int, error) {
	reviews, err := s.ListReviewsByAcademy(ctx, academyName)
	if err != nil {
		return 0, err
	}
	return len(reviews), nil
}

// UpdateAcademyReviewCount rewrites an academy document's total_reviews
// field, or returns ErrNotFound.
func (s *GCSStore) UpdateAcademyReviewCount(ctx context.Context, academyName string, totalReviews int) error {
	academy, err := s.GetAcademy(ctx, academyName)
	if err != nil {
		return err
	}
	academy.TotalReviews = totalReviews
	return s.PutAcademy(ctx, *academy)
}

// Close closes the underlying storage client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

func (s *GCSStore) readObject(ctx context.Context, name string, doc any) error {
	r, err := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("opening object %s: %w", name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading object %s: %w", name, err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("unmarshaling object %s: %w", name, err)
	}
	return nil
}

// sortAcademiesByScore orders descending by reputation_score_100 with
// academy name as the deterministic tiebreak, matching the ranking the
// pipeline produced.
func sortAcademiesByScore(academies []model.Academy) {
	sort.SliceStable(academies, func(i, j int) bool {
		if academies[i].ReputationScore100 != academies[j].ReputationScore100 {
			return academies[i].ReputationScore100 > academies[j].ReputationScore100
		}
		return academies[i].AcademyName < academies[j].AcademyName
	})
}

func sortReviewsByID(reviews []model.Review) {
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].ReviewID < reviews[j].ReviewID
	})
}
