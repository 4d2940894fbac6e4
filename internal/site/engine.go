// Package site drives route generation: it expands the configured routes,
// resolves metadata, runs the generators and the processor pipeline for each
// route, and writes the finished documents.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/pagegen/internal/config"
	"git.home.luguber.info/inful/pagegen/internal/errors"
	"git.home.luguber.info/inful/pagegen/internal/generator"
	"git.home.luguber.info/inful/pagegen/internal/history"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
	"git.home.luguber.info/inful/pagegen/internal/metadata"
	"git.home.luguber.info/inful/pagegen/internal/metrics"
	"git.home.luguber.info/inful/pagegen/internal/processor"
	"git.home.luguber.info/inful/pagegen/internal/render"
)

// Engine generates the whole site from a validated configuration.
type Engine struct {
	cfg      *config.Config
	template string
	routes   []Route
	resolver *metadata.Resolver
	registry *generator.Registry
	pipeline *processor.Pipeline
	renderer render.Renderer
	writer   Writer
	recorder metrics.Recorder
	store    history.Store
}

// Option adjusts engine construction, mainly for swapping implementations in
// tests and embedding scenarios.
type Option func(*Engine)

// WithRenderer overrides the content renderer chosen from the configuration.
func WithRenderer(r render.Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

// WithWriter overrides the output writer.
func WithWriter(w Writer) Option {
	return func(e *Engine) { e.writer = w }
}

// WithRecorder installs a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithHistory installs a build history store.
func WithHistory(s history.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithRegistry overrides the default generator set.
func WithRegistry(r *generator.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// NewEngine builds an engine from a validated configuration.
func NewEngine(cfg *config.Config, opts ...Option) (*Engine, error) {
	tmpl, err := loadTemplate(cfg.Template)
	if err != nil {
		return nil, err
	}

	concrete, routeMeta := expandRoutes(cfg.Routes)

	e := &Engine{
		cfg:      cfg,
		template: tmpl,
		routes:   concrete,
		resolver: metadata.NewResolver(cfg.Metadata, routeMeta),
		registry: DefaultGenerators(cfg.Site),
		pipeline: processor.NewPipeline(
			&processor.TemplateVariables{Open: cfg.Variables.Open, Close: cfg.Variables.Close},
			&processor.Attributes{Prefix: cfg.Directives.Prefix},
		),
		writer:   &FSWriter{Dir: cfg.Output.Directory},
		recorder: metrics.NoopRecorder{},
	}

	for _, opt := range opts {
		opt(e)
	}
	e.pipeline.WithRecorder(e.recorder)

	if e.renderer == nil {
		e.renderer, err = rendererFor(cfg.Content)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// DefaultGenerators assembles the standard generator set, configured from the
// site identity.
func DefaultGenerators(site config.SiteConfig) *generator.Registry {
	reg := generator.NewRegistry()
	reg.Add(generator.TitleGenerator{})
	reg.Add(&generator.MetaTagGenerator{
		DefaultDescription: site.Description,
		DefaultKeywords:    splitKeywords(site.Keywords),
	})
	reg.Add(&generator.CanonicalLinksGenerator{BaseURL: site.BaseURL})
	reg.Add(&generator.OpenGraphGenerator{SiteName: site.Name, DefaultImage: site.DefaultImage})
	reg.Add(&generator.TwitterCardGenerator{SiteHandle: site.TwitterHandle})
	reg.Add(&generator.RobotsMetaGenerator{DefaultRobots: site.Robots})
	reg.Add(&generator.JSONLDGenerator{SiteName: site.Name, BaseURL: site.BaseURL})
	return reg
}

func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func rendererFor(cc config.ContentConfig) (render.Renderer, error) {
	switch cc.Source {
	case "none", "":
		return render.Noop{}, nil
	case "files":
		return &render.File{Dir: cc.Dir}, nil
	case "markdown":
		return render.NewMarkdown(cc.Dir), nil
	default:
		return nil, errors.ValidationFailed("content.source", fmt.Sprintf("unknown source %q", cc.Source))
	}
}

// Routes returns the concrete routes the engine will generate.
func (e *Engine) Routes() []Route {
	out := make([]Route, len(e.routes))
	copy(out, e.routes)
	return out
}

// Build generates every route and returns the build report. Route failures
// are recorded in the report and do not abort the build unless fail_fast is
// configured, in which case the first failure cancels the remaining routes.
func (e *Engine) Build(ctx context.Context) (*Report, error) {
	report := &Report{
		BuildID:   uuid.NewString(),
		StartedAt: time.Now(),
	}

	log := slog.With(logfields.BuildID(report.BuildID))
	log.Info("build started",
		slog.Int("routes", len(e.routes)),
		slog.Int("concurrency", e.cfg.Build.Concurrency))

	if e.cfg.Output.Clean {
		if fw, ok := e.writer.(*FSWriter); ok {
			if err := fw.Clean(); err != nil {
				return nil, err
			}
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	concurrency := e.cfg.Build.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	e.recorder.SetBuildConcurrency(concurrency)

	sem := make(chan struct{}, concurrency)
	results := make([]RouteResult, len(e.routes))

	var wg sync.WaitGroup
	for i, route := range e.routes {
		wg.Add(1)
		go func(i int, route Route) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = e.buildRoute(ctx, log, route)
			if results[i].Failed() && e.cfg.Build.FailFast {
				cancel()
			}
		}(i, route)
	}
	wg.Wait()

	report.Routes = results
	report.Duration = time.Since(report.StartedAt)
	report.Outcome = report.resolveOutcome()

	for _, rr := range results {
		switch {
		case rr.Failed():
			e.recorder.IncRouteResult(metrics.ResultFailed)
		case len(rr.Warnings) > 0:
			e.recorder.IncRouteResult(metrics.ResultWarning)
		default:
			e.recorder.IncRouteResult(metrics.ResultSuccess)
		}
	}
	e.recorder.ObserveBuildDuration(report.Duration)
	e.recorder.IncBuildOutcome(string(report.Outcome))

	log.Info("build finished",
		slog.String("outcome", string(report.Outcome)),
		slog.Int("failed", report.FailedRoutes()),
		slog.Int("warnings", report.WarningCount()),
		logfields.DurationMS(float64(report.Duration.Microseconds())/1000.0))

	if err := e.saveHistory(context.WithoutCancel(ctx), report); err != nil {
		log.Warn("saving build history failed", logfields.Error(err))
	}

	if e.cfg.Build.FailFast && report.FailedRoutes() > 0 {
		return report, firstFailure(results)
	}
	return report, nil
}

// firstFailure surfaces the causal failure of a fail-fast build. Routes that
// failed with a cancellation error are consequences of the cancel, not its
// cause, so they are only used as a fallback when nothing else failed.
func firstFailure(results []RouteResult) error {
	var fallback error
	for _, rr := range results {
		if !rr.Failed() {
			continue
		}
		err := fmt.Errorf("route %s failed: %s", rr.Route, rr.Error)
		if fallback == nil {
			fallback = err
		}
		if !strings.Contains(rr.Error, context.Canceled.Error()) {
			return err
		}
	}
	return fallback
}

// buildRoute drives the per-route pipeline: render content, run generators,
// apply processors, write the document.
func (e *Engine) buildRoute(ctx context.Context, log *slog.Logger, route Route) RouteResult {
	start := time.Now()
	result := RouteResult{Route: route.Path}

	defer func() {
		result.Duration = time.Since(start)
		e.recorder.ObserveRouteDuration(route.Path, result.Duration)
	}()

	if err := ctx.Err(); err != nil {
		result.Error = err.Error()
		return result
	}

	md := e.resolver.Resolve(route.Path)
	e.applyMetadataDefaults(route.Path, md)

	content, err := e.renderer.Render(ctx, route.Path)
	if err != nil {
		result.Error = errors.RenderError(route.Path, err).Error()
		log.Error("route render failed", logfields.Route(route.Path), logfields.Error(err))
		return result
	}

	generated, warnings := e.registry.RunAll(route.Path, content, md)
	for _, warn := range warnings {
		result.Warnings = append(result.Warnings, warn.Error())
		if pe, ok := warn.(*errors.PagegenError); ok {
			if name, ok := pe.Context["generator"].(string); ok {
				e.recorder.IncGeneratorFailure(name)
			}
		}
	}

	doc, err := e.pipeline.Run(route.Path, e.template, md, generated, content)
	if err != nil {
		result.Error = err.Error()
		log.Error("route processing failed", logfields.Route(route.Path), logfields.Error(err))
		return result
	}

	outPath := outputPath(e.cfg.Output.PathPrefix, route.Path)
	if err := e.writer.Write(outPath, []byte(doc)); err != nil {
		result.Error = errors.WriteError(outPath, err).Error()
		log.Error("route write failed", logfields.Route(route.Path),
			logfields.OutputPath(outPath), logfields.Error(err))
		return result
	}

	result.OutputPath = outPath
	log.Debug("route generated", logfields.Route(route.Path), logfields.OutputPath(outPath))
	return result
}

// applyMetadataDefaults injects the derived keys every route can rely on:
// a canonical URL for the route and a title fallback.
func (e *Engine) applyMetadataDefaults(routePath string, md map[string]string) {
	if _, ok := md["url"]; !ok && e.cfg.Site.BaseURL != "" {
		md["url"] = strings.TrimRight(e.cfg.Site.BaseURL, "/") + routePath
	}
	if md["title"] == "" {
		md["title"] = "Page: " + routePath
	}
}

func (e *Engine) saveHistory(ctx context.Context, report *Report) error {
	if e.store == nil {
		return nil
	}
	encoded, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode build report: %w", err)
	}
	return e.store.Save(ctx, history.Record{
		BuildID:    report.BuildID,
		StartedAt:  report.StartedAt,
		Duration:   report.Duration,
		Outcome:    string(report.Outcome),
		RouteCount: len(report.Routes),
		FailedN:    report.FailedRoutes(),
		WarningN:   report.WarningCount(),
		Report:     encoded,
	})
}
