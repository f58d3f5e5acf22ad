package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakwonmap/academy-reputation/internal/docstore"
	"github.com/hakwonmap/academy-reputation/internal/model"
)

var anchor = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type stubLoader struct {
	reviews []model.Review
	err     error
}

func (s *stubLoader) LoadAll(ctx context.Context) ([]model.Review, error) {
	return s.reviews, s.err
}

func longText(n int) string {
	return strings.Repeat("가", n)
}

func TestRunEndToEnd(t *testing.T) {
	loader := &stubLoader{reviews: []model.Review{
		{ReviewID: 1, AcademyName: "가학원", Rating: 5.0, Text: longText(120), DateCreated: "1일 전", SourceFile: "a.csv"},
		{ReviewID: 2, AcademyName: "가학원", Rating: 4.0, Text: longText(110), DateCreated: "10일 전", SourceFile: "a.csv"},
		{ReviewID: 3, AcademyName: "나학원", Rating: 2.0, Text: longText(105), DateCreated: "30일 전", SourceFile: "b.csv"},
		// Unparseable date: excluded from every aggregate.
		{ReviewID: 4, AcademyName: "나학원", Rating: 5.0, Text: longText(105), DateCreated: "어제쯤", SourceFile: "b.csv"},
	}}
	store := docstore.NewMemoryStore()
	csvPath := filepath.Join(t.TempDir(), "scores.csv")

	p, err := New(loader, Config{Store: store, CSVPath: csvPath})
	require.NoError(t, err)

	report, err := p.Run(context.Background(), anchor)
	require.NoError(t, err)

	assert.Equal(t, 4, report.ReviewsLoaded)
	assert.Equal(t, 1, report.ReviewsDropped)
	assert.Equal(t, 2, report.Academies)
	assert.NotEmpty(t, report.RunID)

	// The dropped review is invisible to aggregation.
	require.Len(t, report.Ranking, 2)
	byName := map[string]model.Academy{}
	for _, a := range report.Ranking {
		byName[a.AcademyName] = a
	}
	assert.Equal(t, 2, byName["가학원"].TotalReviews)
	assert.Equal(t, 1, byName["나학원"].TotalReviews)
	assert.InDelta(t, 4.5, byName["가학원"].AvgRating, 1e-9)

	// Ranking sorted descending.
	assert.Equal(t, "가학원", report.Ranking[0].AcademyName)
	assert.Greater(t, report.Ranking[0].ReputationScore100, report.Ranking[1].ReputationScore100)

	// CSV written with header plus one row per academy.
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "academy_name,raw_reputation_score,reputation_score_100", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "가학원,"))

	// All four raw reviews publish verbatim, including the dropped one.
	reviews, err := store.ListReviewsByAcademy(context.Background(), "나학원")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	academies, err := store.ListAcademies(context.Background())
	require.NoError(t, err)
	require.Len(t, academies, 2)
	assert.Equal(t, "가학원", academies[0].AcademyName)
}

func TestRunIsDeterministic(t *testing.T) {
	loader := &stubLoader{reviews: []model.Review{
		{ReviewID: 1, AcademyName: "가학원", Rating: 4.5, Text: longText(120), DateCreated: "3일 전", SourceFile: "a.csv"},
		{ReviewID: 2, AcademyName: "나학원", Rating: 4.0, Text: "친절하고 도움이 많이 됩니다", DateCreated: "7일 전", SourceFile: "a.csv"},
	}}

	p, err := New(loader, Config{})
	require.NoError(t, err)

	first, err := p.Run(context.Background(), anchor)
	require.NoError(t, err)
	second, err := p.Run(context.Background(), anchor)
	require.NoError(t, err)

	assert.Equal(t, first.Ranking, second.Ranking)
}

func TestRunAbortsOnLoadFailure(t *testing.T) {
	loader := &stubLoader{err: errors.New("database is locked")}
	store := docstore.NewMemoryStore()

	p, err := New(loader, Config{Store: store})
	require.NoError(t, err)

	_, err = p.Run(context.Background(), anchor)
	require.Error(t, err)

	// No partial output.
	academies, err := store.ListAcademies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, academies)
}

func TestRunEmptyStore(t *testing.T) {
	p, err := New(&stubLoader{}, Config{})
	require.NoError(t, err)

	report, err := p.Run(context.Background(), anchor)
	require.NoError(t, err)
	assert.Zero(t, report.ReviewsLoaded)
	assert.Empty(t, report.Ranking)
}
