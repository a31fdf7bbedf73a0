// Package metrics records per-run pipeline metrics and pushes them to a
// Prometheus Pushgateway, since a batch job does not live long enough to be scraped.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "review_etl"

// Recorder holds the run's metrics on a private registry. A nil Recorder is
// valid and records nothing.
type Recorder struct {
	reg *prometheus.Registry

	StageDuration *prometheus.HistogramVec
	StageRows     *prometheus.GaugeVec
	Runs          *prometheus.CounterVec
	LastSuccess   prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "stage_duration_seconds",
				Help:    "Pipeline stage duration seconds.",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{"stage"},
		),
		StageRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Namespace: namespace, Name: "stage_rows", Help: "Rows produced by each stage in the last run."},
			[]string{"stage"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "runs_total", Help: "Pipeline runs by outcome."},
			[]string{"outcome"}, // outcome: success|failure|dry_run
		),
		LastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{Namespace: namespace, Name: "last_success_timestamp_seconds", Help: "Unix time of the last successful run."},
		),
	}
	r.reg.MustRegister(r.StageDuration, r.StageRows, r.Runs, r.LastSuccess)
	return r
}

// Registry exposes the underlying registry, e.g. for tests or an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

func (r *Recorder) ObserveStage(stage string, rows int, d time.Duration) {
	if r == nil {
		return
	}
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	r.StageRows.WithLabelValues(stage).Set(float64(rows))
}

func (r *Recorder) ObserveRun(outcome string, at time.Time) {
	if r == nil {
		return
	}
	r.Runs.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		r.LastSuccess.Set(float64(at.Unix()))
	}
}

// Push sends the registry to the Pushgateway at url under job.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if r == nil {
		return nil
	}
	return push.New(url, job).Gatherer(r.reg).PushContext(ctx)
}
