package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/BartekS5/review-etl/internal/config"
	"github.com/BartekS5/review-etl/internal/etl"
	"github.com/BartekS5/review-etl/internal/metrics"
	"github.com/BartekS5/review-etl/pkg/database"
	"github.com/BartekS5/review-etl/pkg/logger"
	"github.com/BartekS5/review-etl/pkg/objectstore"
	"github.com/BartekS5/review-etl/pkg/utils"
)

const pushJob = "review_etl"

func runPipeline(ctx context.Context, opts *RunOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := initLogging(cfg); err != nil {
		return err
	}
	defer logger.Close()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}

	extractor := etl.NewParquetExtractor(store, cfg.Bucket, cfg.Key, cfg.FetchTimeout)
	pipeline := etl.NewPipeline(extractor, loader, opts.DryRun)
	pipeline.Metrics = metrics.New()

	logger.Get().Info().
		Str("source", cfg.SourceKind).
		Str("bucket", cfg.Bucket).
		Str("key", cfg.Key).
		Str("dest_driver", cfg.DestDriver).
		Msg("review-etl starting")

	summary, runErr := pipeline.Run(ctx)
	pushMetrics(ctx, cfg, pipeline.Metrics)
	if runErr != nil {
		return runErr
	}

	logger.Get().Info().
		Int("extracted", summary.Extracted).
		Int("cleaned", summary.Cleaned).
		Int("loaded", summary.Loaded).
		Bool("dry_run", summary.DryRun).
		Msg("review-etl finished")
	return nil
}

func runInspect(ctx context.Context, out io.Writer, opts *RunOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := initLogging(cfg); err != nil {
		return err
	}
	defer logger.Close()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	table, n, err := etl.NewParquetExtractor(store, cfg.Bucket, cfg.Key, cfg.FetchTimeout).Extract(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s/%s: %d rows, %d columns\n\n", cfg.Bucket, cfg.Key, n, len(table.Columns))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Columns, "\t"))
	for i := 0; i < n && i < opts.SampleRows; i++ {
		vals := make([]string, len(table.Columns))
		for j, c := range table.Columns {
			vals[j] = truncate(utils.ConvertToString(table.Rows[i][c]), 40)
		}
		fmt.Fprintln(tw, strings.Join(vals, "\t"))
	}
	return tw.Flush()
}

// loadConfig reads the environment, applies non-empty flag overrides and validates.
func loadConfig(opts *RunOptions) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	override(&cfg.SourceKind, opts.SourceKind)
	override(&cfg.Bucket, opts.Bucket)
	override(&cfg.Key, opts.Key)
	override(&cfg.Region, opts.Region)
	override(&cfg.Endpoint, opts.Endpoint)
	override(&cfg.LogLevel, opts.LogLevel)
	override(&cfg.DestDriver, opts.DestDriver)
	override(&cfg.Destination, opts.Destination)
	if opts.FetchTimeout > 0 {
		cfg.FetchTimeout = opts.FetchTimeout
	}
	if opts.LoadTimeout > 0 {
		cfg.LoadTimeout = opts.LoadTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func initLogging(cfg *config.Config) error {
	return logger.InitLogger(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
}

func newStore(ctx context.Context, cfg *config.Config) (objectstore.Store, error) {
	switch cfg.SourceKind {
	case config.SourceS3:
		return objectstore.NewS3Store(ctx, objectstore.S3Options{
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			SessionToken:    cfg.SessionToken,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
		})
	case config.SourceGCS:
		return objectstore.NewGCSStore(ctx, cfg.GCSCredentialsFile)
	case config.SourceFile:
		return objectstore.NewFileStore(), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.SourceKind)
	}
}

func newLoader(cfg *config.Config) (etl.Loader, error) {
	if cfg.DestDriver == database.DriverMongo {
		return etl.NewMongoLoader(cfg.Destination, cfg.MongoDatabase, cfg.LoadTimeout), nil
	}
	return etl.NewSQLLoader(cfg.DestDriver, cfg.Destination, cfg.LoadTimeout)
}

func pushMetrics(ctx context.Context, cfg *config.Config, rec *metrics.Recorder) {
	if cfg.PushgatewayURL == "" {
		return
	}
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := rec.Push(pushCtx, cfg.PushgatewayURL, pushJob); err != nil {
		logger.Warnf("Failed to push metrics to %s: %v", cfg.PushgatewayURL, err)
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
