// Package metadata merges the layered metadata model: site-wide defaults
// overlaid with route-scoped values. Resolution is read-only and safe for
// concurrent use once constructed.
package metadata

import "strings"

// Resolver resolves the effective metadata map for a route path. Route values
// shadow global values; metadata registered on a parent path (e.g. "/docs/")
// also applies to its children, with more specific paths winning.
type Resolver struct {
	global map[string]string
	routes map[string]map[string]string
}

// NewResolver builds a Resolver over the given layers. The maps are not
// copied; callers must not mutate them after construction.
func NewResolver(global map[string]string, routes map[string]map[string]string) *Resolver {
	if global == nil {
		global = map[string]string{}
	}
	if routes == nil {
		routes = map[string]map[string]string{}
	}
	return &Resolver{global: global, routes: routes}
}

// Resolve returns a fresh map with global metadata merged under the route's
// own metadata. The current route path is always injected under "path".
// An unknown route simply yields the global layer.
func (r *Resolver) Resolve(routePath string) map[string]string {
	merged := make(map[string]string, len(r.global)+8)
	for k, v := range r.global {
		merged[k] = v
	}

	// Parent paths first so more specific registrations override.
	for _, p := range ancestorPaths(routePath) {
		if routeSpecific, ok := r.routes[p]; ok {
			for k, v := range routeSpecific {
				merged[k] = v
			}
		}
	}

	// Exact match without trailing-slash normalization wins last.
	if routeSpecific, ok := r.routes[routePath]; ok {
		for k, v := range routeSpecific {
			merged[k] = v
		}
	}

	merged["path"] = routePath
	return merged
}

// ancestorPaths lists the normalized (trailing-slash) forms of the route and
// all its parents, most general first: "/a/b" -> ["/", "/a/", "/a/b/"].
func ancestorPaths(routePath string) []string {
	path := strings.TrimSuffix(routePath, "/")
	if path == "" {
		path = "/"
	}

	var paths []string
	for {
		if path == "/" {
			paths = append(paths, "/")
			break
		}
		paths = append(paths, path+"/")
		pos := strings.LastIndex(path, "/")
		if pos <= 0 {
			path = "/"
		} else {
			path = path[:pos]
		}
	}

	// Reverse so general paths merge first.
	for i, j := 0, len(paths)-1; i < j; i, j = i+1, j-1 {
		paths[i], paths[j] = paths[j], paths[i]
	}
	return paths
}
