package metrics

import "time"

// ResultLabel enumerates per-route result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for site build metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe for
// nil receivers when using the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObserveRouteDuration(route string, d time.Duration)
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncRouteResult(result ResultLabel)
	IncBuildOutcome(outcome string) // outcome: success|warning|failed
	IncGeneratorFailure(generator string)
	SetBuildConcurrency(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRouteDuration(string, time.Duration) {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncRouteResult(ResultLabel)                 {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
func (NoopRecorder) IncGeneratorFailure(string)                 {}
func (NoopRecorder) SetBuildConcurrency(int)                    {}
