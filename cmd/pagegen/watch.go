package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/pagegen/internal/config"
	"git.home.luguber.info/inful/pagegen/internal/metrics"
)

// serveMetrics exposes the Prometheus registry for the lifetime of the watch
// session.
func serveMetrics(ctx context.Context, listen string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(metricsRegistry))
	srv := &http.Server{Addr: listen, Handler: mux}

	go func() {
		slog.Info("Metrics listening", "addr", listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Warn("metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// runWatch rebuilds the site whenever the configuration, template or content
// sources change. Events are debounced so editor save bursts trigger one
// rebuild.
func runWatch(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if CLI.Watch.Output != "" {
		cfg.Output.Directory = CLI.Watch.Output
	}

	watcher, err := setupWatcher(cfg)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if cfg.Metrics.Enabled {
		serveMetrics(ctx, cfg.Metrics.Listen)
	}

	rebuildReq, trigger := setupDebouncer()

	// Initial build so the output exists before the first change.
	if _, err := buildOnce(ctx, cfg); err != nil {
		slog.Warn("initial build failed", "error", err)
	}

	slog.Info("Watching for changes", "config", CLI.Config)
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-rebuildReq:
			slog.Info("Change detected; rebuilding site")
			// Reload so config and template edits take effect.
			fresh, err := config.Load(CLI.Config)
			if err != nil {
				slog.Warn("configuration reload failed", "error", err)
				continue
			}
			if CLI.Watch.Output != "" {
				fresh.Output.Directory = CLI.Watch.Output
			}
			cfg = fresh
			if _, err := buildOnce(ctx, cfg); err != nil {
				slog.Warn("rebuild failed", "error", err)
			}

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleWatchEvent(watcher, ev, trigger)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func setupWatcher(cfg *config.Config) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// The config file itself is watched via its directory so atomic
	// rename-style saves are still seen.
	if err := watcher.Add(filepath.Dir(CLI.Config)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	if cfg.Template.Path != "" {
		if err := watcher.Add(filepath.Dir(cfg.Template.Path)); err != nil {
			slog.Warn("watch add failed", "dir", filepath.Dir(cfg.Template.Path), "error", err)
		}
	}
	if cfg.Content.Dir != "" {
		if err := addDirsRecursive(watcher, cfg.Content.Dir); err != nil {
			slog.Warn("watch add failed", "dir", cfg.Content.Dir, "error", err)
		}
	}
	return watcher, nil
}

func setupDebouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(300*time.Millisecond, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

func handleWatchEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", "path", ev.Name, "op", ev.Op.String())
	trigger()
}

func shouldIgnoreEvent(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp")
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", "dir", path, "error", err)
			}
		}
		return nil
	})
}
