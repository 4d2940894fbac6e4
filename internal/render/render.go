// Package render supplies the per-route content bodies that feed the
// transformation pipeline. A renderer produces the HTML fragment for a route
// path; the engine injects it into the template's content slot.
package render

import "context"

// Renderer produces the content body for one route.
type Renderer interface {
	// Render returns the HTML fragment for routePath. Implementations
	// should honor ctx cancellation when rendering involves I/O.
	Render(ctx context.Context, routePath string) (string, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, routePath string) (string, error)

func (f RendererFunc) Render(ctx context.Context, routePath string) (string, error) {
	return f(ctx, routePath)
}

// Static serves pre-supplied content bodies keyed by route path, with an
// optional fallback for routes not in the map. Useful for tests and for
// sites whose content comes in fully formed.
type Static struct {
	Content  map[string]string
	Fallback string
}

func (s *Static) Render(_ context.Context, routePath string) (string, error) {
	if body, ok := s.Content[routePath]; ok {
		return body, nil
	}
	return s.Fallback, nil
}

// Noop renders every route to an empty body. Routes built from such a
// renderer still get a full document from the template and generators.
type Noop struct{}

func (Noop) Render(context.Context, string) (string, error) { return "", nil }
