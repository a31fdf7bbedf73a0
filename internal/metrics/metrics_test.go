package metrics_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BartekS5/review-etl/internal/metrics"
)

func TestRecorderObservations(t *testing.T) {
	r := metrics.New()
	r.ObserveStage("clean", 42, 120*time.Millisecond)
	r.ObserveRun("success", time.Unix(1700000000, 0))

	assert.Equal(t, 42.0, testutil.ToFloat64(r.StageRows.WithLabelValues("clean")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Runs.WithLabelValues("success")))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(r.LastSuccess))
	assert.Equal(t, 1, testutil.CollectAndCount(r.StageDuration))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *metrics.Recorder
	r.ObserveStage("load", 1, time.Second)
	r.ObserveRun("failure", time.Now())
	assert.NoError(t, r.Push(context.Background(), "http://unused", "job"))
}

func TestPushSendsMetrics(t *testing.T) {
	var body string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path = req.URL.Path
		b, _ := io.ReadAll(req.Body)
		body = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := metrics.New()
	r.ObserveStage("extract", 3, time.Second)
	require.NoError(t, r.Push(context.Background(), srv.URL, "review_etl"))

	assert.True(t, strings.HasPrefix(path, "/metrics/job/review_etl"), path)
	assert.NotEmpty(t, body)
}
