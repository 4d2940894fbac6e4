package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRenderer(t *testing.T) {
	r := &Static{
		Content:  map[string]string{"/about": "<p>about</p>"},
		Fallback: "<p>default</p>",
	}

	body, err := r.Render(context.Background(), "/about")
	require.NoError(t, err)
	assert.Equal(t, "<p>about</p>", body)

	body, err = r.Render(context.Background(), "/missing")
	require.NoError(t, err)
	assert.Equal(t, "<p>default</p>", body)
}

func TestFileRenderer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>root</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "install.html"), []byte("<p>install</p>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "guide"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "guide", "index.html"), []byte("<p>guide</p>"), 0o644))

	r := &File{Dir: dir}

	body, err := r.Render(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, "<p>root</p>", body)

	body, err = r.Render(context.Background(), "/docs/install")
	require.NoError(t, err)
	assert.Equal(t, "<p>install</p>", body)

	body, err = r.Render(context.Background(), "/docs/guide")
	require.NoError(t, err)
	assert.Equal(t, "<p>guide</p>", body)

	_, err = r.Render(context.Background(), "/nope")
	assert.Error(t, err)
}

func TestFileRendererHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &File{Dir: t.TempDir()}
	_, err := r.Render(ctx, "/")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMarkdownRenderer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte("# Hello\n\nSome *text*.\n"), 0o644))

	r := NewMarkdown(dir)
	body, err := r.Render(context.Background(), "/")
	require.NoError(t, err)
	assert.Contains(t, body, "<h1>Hello</h1>")
	assert.Contains(t, body, "<em>text</em>")
}

func TestMarkdownRendererGFMTables(t *testing.T) {
	dir := t.TempDir()
	table := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.md"), []byte(table), 0o644))

	r := NewMarkdown(dir)
	body, err := r.Render(context.Background(), "/data")
	require.NoError(t, err)
	assert.Contains(t, body, "<table>")
}

func TestMarkdownRendererMissingSource(t *testing.T) {
	r := NewMarkdown(t.TempDir())
	_, err := r.Render(context.Background(), "/absent")
	assert.Error(t, err)
}

func TestRendererFunc(t *testing.T) {
	r := RendererFunc(func(_ context.Context, routePath string) (string, error) {
		return "body for " + routePath, nil
	})
	body, err := r.Render(context.Background(), "/x")
	require.NoError(t, err)
	assert.Equal(t, "body for /x", body)
}
