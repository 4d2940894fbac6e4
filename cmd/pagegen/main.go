package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pagegen/internal/config"
	"git.home.luguber.info/inful/pagegen/internal/history"
	"git.home.luguber.info/inful/pagegen/internal/metrics"
	"git.home.luguber.info/inful/pagegen/internal/site"
)

var metricsRegistry = prom.NewRegistry()

// resolveRecorder returns the process-wide Prometheus recorder. Registration
// is once-only so watch-mode rebuilds reuse the same collectors.
var resolveRecorder = sync.OnceValue(func() metrics.Recorder {
	return metrics.NewPrometheusRecorder(metricsRegistry)
})

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"pagegen.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output   string `short:"o" help:"Override output directory"`
		FailFast bool   `help:"Abort the build on the first route failure"`
	} `cmd:"" help:"Generate the site from the configured routes"`

	Routes struct{} `cmd:"" help:"List the concrete routes the build would generate"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	History struct {
		Limit int `short:"n" help:"Number of builds to list" default:"10"`
	} `cmd:"" help:"List recent builds from the history database"`

	Watch struct {
		Output string `short:"o" help:"Override output directory"`
	} `cmd:"" help:"Rebuild the site whenever configuration, template or content change"`
}

func main() {
	kctx := kong.Parse(&CLI)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch kctx.Command() {
	case "build":
		err = runBuild(ctx)
	case "routes":
		err = runRoutes()
	case "init":
		err = config.Init(CLI.Config, CLI.Init.Force)
	case "history":
		err = runHistory(ctx)
	case "watch":
		err = runWatch(ctx)
	default:
		err = fmt.Errorf("unknown command %q", kctx.Command())
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.Logging)
	return cfg, nil
}

func setupLogging(lc config.LoggingConfig) {
	level := slog.LevelInfo
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if CLI.Verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func runBuild(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if CLI.Build.Output != "" {
		cfg.Output.Directory = CLI.Build.Output
	}
	if CLI.Build.FailFast {
		cfg.Build.FailFast = true
	}

	report, err := buildOnce(ctx, cfg)
	if err != nil {
		return err
	}
	if report.Outcome == site.OutcomeFailed {
		return fmt.Errorf("%d of %d routes failed", report.FailedRoutes(), len(report.Routes))
	}
	return nil
}

func buildOnce(ctx context.Context, cfg *config.Config) (*site.Report, error) {
	var opts []site.Option
	if cfg.Metrics.Enabled {
		opts = append(opts, site.WithRecorder(resolveRecorder()))
	}
	if cfg.Build.HistoryDB != "" {
		store, err := history.NewSQLiteStore(cfg.Build.HistoryDB)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		opts = append(opts, site.WithHistory(store))
	}

	engine, err := site.NewEngine(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return engine.Build(ctx)
}

func runRoutes() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := site.NewEngine(cfg)
	if err != nil {
		return err
	}
	for _, route := range engine.Routes() {
		if route.Pattern != "" {
			fmt.Printf("%s\t(from %s)\n", route.Path, route.Pattern)
			continue
		}
		fmt.Println(route.Path)
	}
	return nil
}

func runHistory(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Build.HistoryDB == "" {
		return fmt.Errorf("build.history_db is not configured")
	}

	store, err := history.NewSQLiteStore(cfg.Build.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListRecent(ctx, CLI.History.Limit)
	if err != nil {
		return err
	}
	for _, rec := range records {
		fmt.Printf("%s  %s  %-8s  routes=%d failed=%d warnings=%d  %s\n",
			rec.BuildID,
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.Outcome,
			rec.RouteCount, rec.FailedN, rec.WarningN,
			rec.Duration)
	}
	return nil
}
