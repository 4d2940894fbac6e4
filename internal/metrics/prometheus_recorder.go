package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	routeDuration     *prom.HistogramVec
	stageDuration     *prom.HistogramVec
	buildDuration     prom.Histogram
	routeResults      *prom.CounterVec
	buildOutcome      *prom.CounterVec
	generatorFailures *prom.CounterVec
	buildConcurrency  prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.routeDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "pagegen",
			Name:      "route_duration_seconds",
			Help:      "Duration of individual route generations",
			Buckets:   prom.DefBuckets,
		}, []string{"route"})
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "pagegen",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual processor stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "pagegen",
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.routeResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagegen",
			Name:      "route_results_total",
			Help:      "Route results by outcome",
		}, []string{"result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagegen",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.generatorFailures = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagegen",
			Name:      "generator_failures_total",
			Help:      "Generator output failures by generator name",
		}, []string{"generator"})
		pr.buildConcurrency = prom.NewGauge(prom.GaugeOpts{
			Namespace: "pagegen",
			Name:      "build_concurrency",
			Help:      "Configured route worker concurrency for the last build",
		})
		reg.MustRegister(pr.routeDuration, pr.stageDuration, pr.buildDuration, pr.routeResults, pr.buildOutcome, pr.generatorFailures, pr.buildConcurrency)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveRouteDuration(route string, d time.Duration) {
	if p == nil || p.routeDuration == nil {
		return
	}
	p.routeDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRouteResult(result ResultLabel) {
	if p == nil || p.routeResults == nil {
		return
	}
	p.routeResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncGeneratorFailure(generator string) {
	if p == nil || p.generatorFailures == nil {
		return
	}
	p.generatorFailures.WithLabelValues(generator).Inc()
}

func (p *PrometheusRecorder) SetBuildConcurrency(n int) {
	if p == nil || p.buildConcurrency == nil {
		return
	}
	p.buildConcurrency.Set(float64(n))
}
