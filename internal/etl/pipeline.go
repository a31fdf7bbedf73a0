package etl

import (
	"context"
	"time"

	"github.com/BartekS5/review-etl/internal/metrics"
	"github.com/BartekS5/review-etl/pkg/logger"
	"github.com/BartekS5/review-etl/pkg/models"
)

// Pipeline runs extract, clean, transform and load strictly in order. The
// first error aborts the run and is returned unchanged.
type Pipeline struct {
	Extractor   Extractor
	Cleaner     Stage
	Transformer Stage
	Loader      Loader
	DryRun      bool
	Metrics     *metrics.Recorder
}

// Summary describes a completed run.
type Summary struct {
	Extracted int
	Cleaned   int
	Loaded    int
	Durations map[string]time.Duration
	DryRun    bool
}

func NewPipeline(ext Extractor, loader Loader, dryRun bool) *Pipeline {
	return &Pipeline{
		Extractor:   ext,
		Cleaner:     NewCleaner(),
		Transformer: NewTransformer(),
		Loader:      loader,
		DryRun:      dryRun,
	}
}

func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	logger.Infof("Starting pipeline. DryRun: %v", p.DryRun)
	sum := &Summary{Durations: make(map[string]time.Duration, 4), DryRun: p.DryRun}
	started := time.Now()

	if err := p.run(ctx, sum); err != nil {
		logger.Errorf("Pipeline failed after %s: %v", time.Since(started).Round(time.Millisecond), err)
		p.Metrics.ObserveRun("failure", time.Now())
		return nil, err
	}

	outcome := "success"
	if p.DryRun {
		outcome = "dry_run"
	}
	p.Metrics.ObserveRun(outcome, time.Now())
	logger.Infof("Pipeline finished successfully in %s.", time.Since(started).Round(time.Millisecond))
	return sum, nil
}

func (p *Pipeline) run(ctx context.Context, sum *Summary) error {
	// 1. Extract
	start := time.Now()
	table, n, err := p.Extractor.Extract(ctx)
	if err != nil {
		return err
	}
	sum.Extracted = n
	p.observe(sum, "extract", n, start)

	// 2. Clean, 3. Transform
	for i, stage := range []Stage{p.Cleaner, p.Transformer} {
		if err := ctx.Err(); err != nil {
			return err
		}
		start = time.Now()
		table, err = stage.Apply(table)
		if err != nil {
			return err
		}
		p.observe(sum, stage.Name(), table.Len(), start)
		if i == 0 {
			sum.Cleaned = table.Len()
		}
	}

	// 4. Load (skipped on dry run)
	if p.DryRun {
		logger.Infof("[DRY RUN] Would load %d records into %s", table.Len(), models.TableName)
		return nil
	}
	start = time.Now()
	loaded, err := p.Loader.Load(ctx, table)
	if err != nil {
		return err
	}
	sum.Loaded = loaded
	p.observe(sum, "load", loaded, start)
	return nil
}

func (p *Pipeline) observe(sum *Summary, stage string, rows int, start time.Time) {
	d := time.Since(start)
	sum.Durations[stage] = d
	p.Metrics.ObserveStage(stage, rows, d)
	logger.Get().Debug().Str("stage", stage).Int("rows", rows).Dur("took", d).Msg("stage complete")
}
