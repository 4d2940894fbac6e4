package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagegen/internal/config"
	"git.home.luguber.info/inful/pagegen/internal/render"
)

func testConfig(routes ...config.RouteConfig) *config.Config {
	cfg := &config.Config{
		Site: config.SiteConfig{
			Title:       "Test Site",
			BaseURL:     "https://example.com",
			Description: "test description",
		},
		Routes: routes,
	}
	cfg.ApplyDefaults()
	cfg.Build.Concurrency = 2
	return cfg
}

// memWriter collects written documents keyed by relative path.
type memWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemWriter() *memWriter {
	return &memWriter{files: map[string][]byte{}}
}

func (w *memWriter) Write(relPath string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[relPath] = data
	return nil
}

func (w *memWriter) get(relPath string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return string(w.files[relPath])
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "index.html", outputPath("", "/"))
	assert.Equal(t, "about/index.html", outputPath("", "/about"))
	assert.Equal(t, "docs/guide/index.html", outputPath("", "/docs/guide"))
	assert.Equal(t, "site/about/index.html", outputPath("site", "/about"))
	assert.Equal(t, "site/index.html", outputPath("/site/", "/"))
}

func TestExpandRoutesPlain(t *testing.T) {
	concrete, meta := expandRoutes([]config.RouteConfig{
		{Path: "/about", Metadata: map[string]string{"title": "About"}},
	})
	require.Len(t, concrete, 1)
	assert.Equal(t, "/about", concrete[0].Path)
	assert.Equal(t, "About", meta["/about"]["title"])
}

func TestExpandRoutesParameterized(t *testing.T) {
	concrete, meta := expandRoutes([]config.RouteConfig{{
		Path:   "/docs/:lang",
		Params: map[string][]string{"lang": {"en", "de"}},
		ParamMetadata: map[string]map[string]map[string]string{
			"lang": {"de": {"title": "Dokumentation"}},
		},
	}})

	require.Len(t, concrete, 2)
	assert.Equal(t, "/docs/de", concrete[0].Path)
	assert.Equal(t, "/docs/en", concrete[1].Path)

	assert.Equal(t, "de", meta["/docs/de"]["param_lang"])
	assert.Equal(t, "Dokumentation", meta["/docs/de"]["title"])
	assert.Equal(t, "en", meta["/docs/en"]["param_lang"])
	_, hasTitle := meta["/docs/en"]["title"]
	assert.False(t, hasTitle)
}

func TestEngineBuildWritesAllRoutes(t *testing.T) {
	cfg := testConfig(
		config.RouteConfig{Path: "/", Metadata: map[string]string{"title": "Home"}},
		config.RouteConfig{Path: "/about", Metadata: map[string]string{"title": "About"}},
	)
	writer := newMemWriter()

	engine, err := NewEngine(cfg,
		WithWriter(writer),
		WithRenderer(&render.Static{Fallback: "<p>body</p>"}),
	)
	require.NoError(t, err)

	report, err := engine.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.NotEmpty(t, report.BuildID)
	require.Len(t, report.Routes, 2)

	home := writer.get("index.html")
	assert.Contains(t, home, "<title>Home</title>")
	assert.Contains(t, home, "<main><p>body</p></main>")
	assert.NotContains(t, home, "data-ssg")

	about := writer.get("about/index.html")
	assert.Contains(t, about, "<title>About</title>")
	assert.Contains(t, about, `href="https://example.com/about"`)
}

func TestEngineTitleFallback(t *testing.T) {
	cfg := testConfig(config.RouteConfig{Path: "/untitled"})
	writer := newMemWriter()

	engine, err := NewEngine(cfg, WithWriter(writer), WithRenderer(render.Noop{}))
	require.NoError(t, err)

	_, err = engine.Build(context.Background())
	require.NoError(t, err)
	assert.Contains(t, writer.get("untitled/index.html"), "<title>Page: /untitled</title>")
}

func TestEngineRenderFailureIsReported(t *testing.T) {
	cfg := testConfig(
		config.RouteConfig{Path: "/ok", Metadata: map[string]string{"title": "OK"}},
		config.RouteConfig{Path: "/bad"},
	)
	writer := newMemWriter()
	renderer := render.RendererFunc(func(_ context.Context, routePath string) (string, error) {
		if routePath == "/bad" {
			return "", assert.AnError
		}
		return "fine", nil
	})

	engine, err := NewEngine(cfg, WithWriter(writer), WithRenderer(renderer))
	require.NoError(t, err)

	report, err := engine.Build(context.Background())
	require.NoError(t, err, "route failures do not fail the build by default")
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.Equal(t, 1, report.FailedRoutes())

	// The healthy route still produced output.
	assert.NotEmpty(t, writer.get("ok/index.html"))
}

func TestEngineFailFastReturnsError(t *testing.T) {
	cfg := testConfig(config.RouteConfig{Path: "/bad"})
	cfg.Build.FailFast = true

	engine, err := NewEngine(cfg,
		WithWriter(newMemWriter()),
		WithRenderer(render.RendererFunc(func(context.Context, string) (string, error) {
			return "", assert.AnError
		})),
	)
	require.NoError(t, err)

	report, err := engine.Build(context.Background())
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, report.Outcome)
}

func TestEngineFailFastSurfacesCausalFailure(t *testing.T) {
	// "/blocked" sorts first but only fails because the genuine "/broken"
	// failure cancels the build; the returned error must name the cause.
	cfg := testConfig(
		config.RouteConfig{Path: "/blocked"},
		config.RouteConfig{Path: "/broken"},
	)
	cfg.Build.FailFast = true

	engine, err := NewEngine(cfg,
		WithWriter(newMemWriter()),
		WithRenderer(render.RendererFunc(func(ctx context.Context, routePath string) (string, error) {
			if routePath == "/blocked" {
				<-ctx.Done()
				return "", ctx.Err()
			}
			return "", assert.AnError
		})),
	)
	require.NoError(t, err)

	report, err := engine.Build(context.Background())
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.Contains(t, err.Error(), "/broken")
	assert.NotContains(t, err.Error(), context.Canceled.Error())
}

func TestEngineParameterizedRoutes(t *testing.T) {
	cfg := testConfig(config.RouteConfig{
		Path:   "/crate/:id",
		Params: map[string][]string{"id": {"serde", "tokio"}},
	})
	writer := newMemWriter()

	engine, err := NewEngine(cfg, WithWriter(writer), WithRenderer(render.Noop{}))
	require.NoError(t, err)
	assert.Len(t, engine.Routes(), 2)

	report, err := engine.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.NotEmpty(t, writer.get("crate/serde/index.html"))
	assert.NotEmpty(t, writer.get("crate/tokio/index.html"))
}

func TestEnginePathPrefix(t *testing.T) {
	cfg := testConfig(config.RouteConfig{Path: "/", Metadata: map[string]string{"title": "Home"}})
	cfg.Output.PathPrefix = "docs"
	writer := newMemWriter()

	engine, err := NewEngine(cfg, WithWriter(writer), WithRenderer(render.Noop{}))
	require.NoError(t, err)

	_, err = engine.Build(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, writer.get("docs/index.html"))
}

func TestEngineInlineTemplate(t *testing.T) {
	cfg := testConfig(config.RouteConfig{Path: "/", Metadata: map[string]string{"title": "Home"}})
	cfg.Template.Inline = `<html><head>{{title}}</head><body>{{content}}</body></html>`
	writer := newMemWriter()

	engine, err := NewEngine(cfg, WithWriter(writer),
		WithRenderer(&render.Static{Fallback: "<p>inline</p>"}))
	require.NoError(t, err)

	_, err = engine.Build(context.Background())
	require.NoError(t, err)
	out := writer.get("index.html")
	assert.Equal(t, "<html><head><title>Home</title></head><body><p>inline</p></body></html>", out)
}

func TestEngineTemplateFromFile(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(tmplPath, []byte("<html>{{title}}</html>"), 0o644))

	cfg := testConfig(config.RouteConfig{Path: "/", Metadata: map[string]string{"title": "T"}})
	cfg.Template.Path = tmplPath
	writer := newMemWriter()

	engine, err := NewEngine(cfg, WithWriter(writer), WithRenderer(render.Noop{}))
	require.NoError(t, err)

	_, err = engine.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html><title>T</title></html>", writer.get("index.html"))
}

func TestEngineMissingTemplateFileErrors(t *testing.T) {
	cfg := testConfig(config.RouteConfig{Path: "/"})
	cfg.Template.Path = filepath.Join(t.TempDir(), "absent.html")

	_, err := NewEngine(cfg)
	assert.Error(t, err)
}

func TestFSWriter(t *testing.T) {
	dir := t.TempDir()
	w := &FSWriter{Dir: filepath.Join(dir, "out")}

	require.NoError(t, w.Write("docs/index.html", []byte("hello")))
	data, err := os.ReadFile(filepath.Join(dir, "out", "docs", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, w.Clean())
	_, err = os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(err))
}

func TestDefaultTemplateCoversGeneratorSlots(t *testing.T) {
	for _, key := range []string{"title", "meta_tags", "canonical_links", "open_graph", "twitter_card", "robots_meta", "json_ld"} {
		assert.True(t, strings.Contains(defaultTemplate, "{{"+key+"}}"), key)
	}
	assert.Contains(t, defaultTemplate, `data-ssg="content"`)
}
