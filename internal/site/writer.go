package site

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Writer persists one generated document. Paths are slash separated and
// relative to the site root.
type Writer interface {
	Write(relPath string, data []byte) error
}

// FSWriter writes documents under a directory on the local filesystem.
type FSWriter struct {
	Dir string
}

func (w *FSWriter) Write(relPath string, data []byte) error {
	full := filepath.Join(w.Dir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// Clean removes previously generated output.
func (w *FSWriter) Clean() error {
	if err := os.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("clean output directory: %w", err)
	}
	return nil
}

// outputPath derives the document path for a route: every route becomes a
// directory with an index.html so URLs stay extension-free, and the root
// route maps straight onto index.html. A configured prefix nests the whole
// site under a subdirectory.
func outputPath(prefix, routePath string) string {
	trimmed := strings.Trim(routePath, "/")
	prefix = strings.Trim(prefix, "/")
	if trimmed == "" {
		return path.Join(prefix, "index.html")
	}
	return path.Join(prefix, trimmed, "index.html")
}
