package database

import (
	"context"
	"fmt"

	"github.com/hakwonmap/academy-reputation/internal/model"
)

// reviewColumns is the load contract for the reviews table. A store that
// is missing any of these is malformed and fails the whole batch.
var reviewColumns = []string{
	"review_id", "academy_name", "rating", "text", "date_created", "source_file",
}

// ReviewRepository reads and writes the scraped review store.
type ReviewRepository struct {
	db *DB
}

// NewReviewRepository creates a new repository
func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// LoadAll reads every review row. It validates the column set first so a
// malformed store aborts the batch instead of producing partial output.
func (r *ReviewRepository) LoadAll(ctx context.Context) ([]model.Review, error) {
	if err := r.validateColumns(ctx); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT review_id, academy_name, rating, COALESCE(text, ''), COALESCE(date_created, ''), COALESCE(source_file, '')
		FROM reviews
		ORDER BY review_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ReviewID, &rev.AcademyName, &rev.Rating, &rev.Text, &rev.DateCreated, &rev.SourceFile); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// Insert upserts a single review keyed by review_id.
func (r *ReviewRepository) Insert(ctx context.Context, rev model.Review) error {
	stmt, err := r.db.GetPreparedStatement("insert_review")
	if err != nil {
		return err
	}

	if _, err := stmt.ExecContext(ctx, rev.ReviewID, rev.AcademyName, rev.Rating, rev.Text, rev.DateCreated, rev.SourceFile); err != nil {
		return fmt.Errorf("failed to insert review %d: %w", rev.ReviewID, err)
	}
	return nil
}

// BulkInsert upserts a batch of reviews in one transaction.
func (r *ReviewRepository) BulkInsert(ctx context.Context, reviews []model.Review) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rev := range reviews {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO reviews (review_id, academy_name, rating, text, date_created, source_file)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(review_id) DO UPDATE SET
			academy_name = excluded.academy_name,
			rating = excluded.rating,
			text = excluded.text,
			date_created = excluded.date_created,
			source_file = excluded.source_file
		`, rev.ReviewID, rev.AcademyName, rev.Rating, rev.Text, rev.DateCreated, rev.SourceFile); err != nil {
			return fmt.Errorf("failed to insert review %d: %w", rev.ReviewID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reviews: %w", err)
	}
	return nil
}

// Count returns the total number of stored reviews.
func (r *ReviewRepository) Count(ctx context.Context) (int, error) {
	stmt, err := r.db.GetPreparedStatement("count_reviews")
	if err != nil {
		return 0, err
	}

	var n int
	if err := stmt.QueryRowContext(ctx).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return n, nil
}

// CountByAcademy returns the number of stored reviews for one academy.
func (r *ReviewRepository) CountByAcademy(ctx context.Context, academyName string) (int, error) {
	stmt, err := r.db.GetPreparedStatement("count_reviews_by_academy")
	if err != nil {
		return 0, err
	}

	var n int
	if err := stmt.QueryRowContext(ctx, academyName).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count reviews for %s: %w", academyName, err)
	}
	return n, nil
}

// validateColumns checks that every required review column exists.
func (r *ReviewRepository) validateColumns(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM pragma_table_info('reviews')`)
	if err != nil {
		return fmt.Errorf("failed to inspect reviews table: %w", err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan column name: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate columns: %w", err)
	}

	if len(present) == 0 {
		return fmt.Errorf("reviews table does not exist")
	}
	for _, col := range reviewColumns {
		if !present[col] {
			return fmt.Errorf("reviews table is missing required column %q", col)
		}
	}
	return nil
}
