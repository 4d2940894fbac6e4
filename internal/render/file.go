package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File reads content bodies from a directory tree mirroring the route
// space: /docs/install resolves to <Dir>/docs/install.html, falling back to
// <Dir>/docs/install/index.html. The root route reads <Dir>/index.html.
type File struct {
	Dir string
}

func (f *File) Render(ctx context.Context, routePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	for _, candidate := range f.candidates(routePath) {
		body, err := os.ReadFile(candidate)
		if err == nil {
			return string(body), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read content file %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("no content file for route %s under %s", routePath, f.Dir)
}

func (f *File) candidates(routePath string) []string {
	trimmed := strings.Trim(routePath, "/")
	if trimmed == "" {
		return []string{filepath.Join(f.Dir, "index.html")}
	}
	rel := filepath.FromSlash(trimmed)
	return []string{
		filepath.Join(f.Dir, rel+".html"),
		filepath.Join(f.Dir, rel, "index.html"),
	}
}
