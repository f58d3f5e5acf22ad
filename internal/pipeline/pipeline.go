// Package pipeline runs the batch reputation job: load reviews, compute
// per-review features, aggregate per academy, score, rank, and persist.
// The run is single-threaded and stateless between runs; every run
// recomputes from the full review store.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hakwonmap/academy-reputation/internal/apperr"
	"github.com/hakwonmap/academy-reputation/internal/docstore"
	"github.com/hakwonmap/academy-reputation/internal/export"
	"github.com/hakwonmap/academy-reputation/internal/model"
	"github.com/hakwonmap/academy-reputation/internal/monitoring"
	"github.com/hakwonmap/academy-reputation/internal/reldate"
	"github.com/hakwonmap/academy-reputation/internal/scoring"
)

// Loader reads the full review store. A load failure is fatal for the
// run; the pipeline never produces partial output.
type Loader interface {
	LoadAll(ctx context.Context) ([]model.Review, error)
}

// Config wires the pipeline's optional outputs.
type Config struct {
	// Store receives the raw reviews and the academy ranking after a
	// successful run. Nil disables publishing.
	Store docstore.Store

	// CSVPath receives the ranked score table. Empty disables the file.
	CSVPath string

	// Metrics is optional.
	Metrics *monitoring.Registry

	// Weights defaults to scoring.DefaultWeights when zero.
	Weights scoring.Weights
}

// Report summarizes one batch run.
type Report struct {
	RunID          string
	StartedAt      time.Time
	Duration       time.Duration
	ReviewsLoaded  int
	ReviewsDropped int
	Academies      int
	Ranking        []model.Academy
}

// Pipeline is the batch scoring job.
type Pipeline struct {
	loader  Loader
	engine  *scoring.Engine
	scorer  *scoring.Scorer
	store   docstore.Store
	metrics *monitoring.Registry
	csvPath string
}

// New builds a pipeline. The weight table is validated here so a
// misconfigured formula fails before any run starts.
func New(loader Loader, cfg Config) (*Pipeline, error) {
	weights := cfg.Weights
	if weights == (scoring.Weights{}) {
		weights = scoring.DefaultWeights
	}

	scorer, err := scoring.NewScorer(weights)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		loader:  loader,
		engine:  scoring.NewEngine(),
		scorer:  scorer,
		store:   cfg.Store,
		metrics: cfg.Metrics,
		csvPath: cfg.CSVPath,
	}, nil
}

// Run executes one batch run anchored at now. Relative review dates are
// resolved against now, so a fixed now makes the run reproducible.
func (p *Pipeline) Run(ctx context.Context, now time.Time) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: now,
	}
	start := time.Now()

	logger := slog.With("run_id", report.RunID)
	logger.Info("Starting reputation batch run")

	if p.metrics != nil {
		p.metrics.PipelineRuns.Inc()
	}

	reviews, err := p.loader.LoadAll(ctx)
	if err != nil {
		if p.metrics != nil {
			p.metrics.PipelineFailures.Inc()
		}
		return nil, apperr.NewStorageError("failed to load reviews", err)
	}
	report.ReviewsLoaded = len(reviews)
	logger.Info("Loaded reviews", "count", len(reviews))

	scored := p.engine.ScoreBatch(reviews)

	// Reviews whose date cannot be normalized are dropped from every
	// downstream aggregate.
	valid := make([]model.ScoredReview, 0, len(scored))
	for _, sr := range scored {
		created, ok := reldate.Parse(sr.DateCreated, now)
		if !ok {
			report.ReviewsDropped++
			logger.Debug("Dropping review with unparseable date",
				"review_id", sr.ReviewID,
				"date_created", sr.DateCreated)
			continue
		}
		sr.DaysSinceReview = reldate.DaysSince(created, now)
		valid = append(valid, sr)
	}
	if report.ReviewsDropped > 0 {
		logger.Warn("Dropped reviews with invalid dates", "count", report.ReviewsDropped)
	}

	academies := scoring.Aggregate(valid)
	ranked := p.scorer.Score(academies)
	report.Academies = len(ranked)
	report.Ranking = ranked

	if p.csvPath != "" {
		if err := export.WriteRankingFile(p.csvPath, ranked); err != nil {
			if p.metrics != nil {
				p.metrics.PipelineFailures.Inc()
			}
			return nil, apperr.NewStorageError("failed to write ranking csv", err)
		}
		logger.Info("Wrote ranking csv", "path", p.csvPath, "academies", len(ranked))
	}

	if p.store != nil {
		if err := p.publish(ctx, reviews, ranked); err != nil {
			if p.metrics != nil {
				p.metrics.PipelineFailures.Inc()
			}
			return nil, err
		}
	}

	report.Duration = time.Since(start)
	if p.metrics != nil {
		p.metrics.ReviewsLoaded.Add(float64(report.ReviewsLoaded))
		p.metrics.ReviewsDropped.Add(float64(report.ReviewsDropped))
		p.metrics.PipelineDurationSec.Observe(report.Duration.Seconds())
	}

	logTopRanking(logger, ranked)
	logger.Info("Batch run finished",
		"reviews_loaded", report.ReviewsLoaded,
		"reviews_dropped", report.ReviewsDropped,
		"academies", report.Academies,
		"duration_ms", report.Duration.Milliseconds())

	return report, nil
}

// publish uploads the raw review collection verbatim plus every academy
// document. Reviews dropped from scoring still publish: the query
// service's detail view shows everything that was scraped.
func (p *Pipeline) publish(ctx context.Context, reviews []model.Review, ranked []model.Academy) error {
	for _, r := range reviews {
		if err := p.store.PutReview(ctx, r); err != nil {
			return apperr.NewStorageError("failed to publish review", err)
		}
	}
	for _, a := range ranked {
		if err := p.store.PutAcademy(ctx, a); err != nil {
			return apperr.NewStorageError("failed to publish academy", err)
		}
	}
	slog.Info("Published batch output", "reviews", len(reviews), "academies", len(ranked))
	return nil
}

// logTopRanking logs the head of the ranking after a run.
func logTopRanking(logger *slog.Logger, ranked []model.Academy) {
	limit := 10
	if len(ranked) < limit {
		limit = len(ranked)
	}
	for i := 0; i < limit; i++ {
		logger.Info("Ranking",
			"rank", i+1,
			"academy_name", ranked[i].AcademyName,
			"reputation_score_100", ranked[i].ReputationScore100)
	}
}
