package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown converts Markdown sources into route bodies. Route paths map onto
// the source tree the same way File maps them, with .md extensions:
// /docs/install reads <Dir>/docs/install.md or <Dir>/docs/install/index.md.
type Markdown struct {
	Dir string

	md goldmark.Markdown
}

// NewMarkdown constructs a Markdown renderer over dir with GitHub flavored
// tables and strikethrough enabled.
func NewMarkdown(dir string) *Markdown {
	return &Markdown{
		Dir: dir,
		md:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (m *Markdown) Render(ctx context.Context, routePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	source, path, err := m.read(routePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := m.converter().Convert(source, &buf); err != nil {
		return "", fmt.Errorf("convert markdown %s: %w", path, err)
	}
	return buf.String(), nil
}

func (m *Markdown) converter() goldmark.Markdown {
	if m.md == nil {
		m.md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	}
	return m.md
}

func (m *Markdown) read(routePath string) ([]byte, string, error) {
	trimmed := strings.Trim(routePath, "/")
	var candidates []string
	if trimmed == "" {
		candidates = []string{filepath.Join(m.Dir, "index.md")}
	} else {
		rel := filepath.FromSlash(trimmed)
		candidates = []string{
			filepath.Join(m.Dir, rel+".md"),
			filepath.Join(m.Dir, rel, "index.md"),
		}
	}

	for _, candidate := range candidates {
		source, err := os.ReadFile(candidate)
		if err == nil {
			return source, candidate, nil
		}
		if !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("read markdown source %s: %w", candidate, err)
		}
	}
	return nil, "", fmt.Errorf("no markdown source for route %s under %s", routePath, m.Dir)
}
