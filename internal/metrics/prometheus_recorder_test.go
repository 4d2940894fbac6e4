package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveRouteDuration("/docs", 150*time.Millisecond)
	pr.ObserveStageDuration("attributes", 20*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncRouteResult(ResultSuccess)
	pr.IncBuildOutcome("success")
	pr.IncGeneratorFailure("open_graph")
	pr.SetBuildConcurrency(4)
	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveRouteDuration("/", time.Second)
	r.ObserveStageDuration("x", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncRouteResult(ResultFailed)
	r.IncBuildOutcome("failed")
	r.IncGeneratorFailure("x")
	r.SetBuildConcurrency(1)
}
