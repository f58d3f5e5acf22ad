package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/hakwonmap/academy-reputation/internal/config"
	"github.com/hakwonmap/academy-reputation/internal/database"
	"github.com/hakwonmap/academy-reputation/internal/docstore"
	"github.com/hakwonmap/academy-reputation/internal/monitoring"
	"github.com/hakwonmap/academy-reputation/internal/pipeline"
)

type runFlags struct {
	dbPath  string
	outPath string
	upload  bool
	bucket  string
	nowStr  string
}

func newRunCmd() *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one batch scoring run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd.Context(), f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.dbPath, "db", "", "Review database path (default: REVIEW_DB_PATH)")
	flags.StringVar(&f.outPath, "out", "", "Output CSV path (default: OUTPUT_CSV_PATH)")
	flags.BoolVar(&f.upload, "upload", false, "Publish reviews and ranking to the document store")
	flags.StringVar(&f.bucket, "bucket", "", "Document store bucket (default: DOCSTORE_BUCKET)")
	flags.StringVar(&f.nowStr, "now", "", "Anchor time for relative dates, RFC3339 (default: current time)")

	return cmd
}

func runPipeline(ctx context.Context, f *runFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	monitoring.SetupLogging(cfg.LogLevel)

	if f.dbPath == "" {
		f.dbPath = cfg.ReviewDBPath
	}
	if f.outPath == "" {
		f.outPath = cfg.OutputCSVPath
	}
	if f.bucket == "" {
		f.bucket = cfg.DocstoreBucket
	}

	now := time.Now()
	if f.nowStr != "" {
		now, err = time.Parse(time.RFC3339, f.nowStr)
		if err != nil {
			return fmt.Errorf("invalid --now value %q: %w", f.nowStr, err)
		}
	}

	db, err := database.NewDB(f.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open review database: %w", err)
	}
	defer db.Close()

	var store docstore.Store
	if f.upload {
		gcs, err := docstore.NewGCSStore(ctx, f.bucket)
		if err != nil {
			return fmt.Errorf("failed to open document store: %w", err)
		}
		defer gcs.Close()
		store = gcs
	}

	p, err := pipeline.New(database.NewReviewRepository(db), pipeline.Config{
		Store:   store,
		CSVPath: f.outPath,
		Metrics: monitoring.NewRegistry(),
	})
	if err != nil {
		return err
	}

	report, err := p.Run(ctx, now)
	if err != nil {
		return err
	}

	slog.Info("Batch run complete",
		"run_id", report.RunID,
		"reviews_loaded", report.ReviewsLoaded,
		"reviews_dropped", report.ReviewsDropped,
		"academies", report.Academies,
		"duration", report.Duration,
		"csv", f.outPath,
		"uploaded", f.upload,
	)
	return nil
}
