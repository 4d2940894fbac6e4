package site

import (
	"git.home.luguber.info/inful/pagegen/internal/config"
	"git.home.luguber.info/inful/pagegen/internal/routes"
)

// Route is one concrete page to generate. Parameterized route patterns are
// expanded before the build starts, so the engine only ever sees concrete
// paths.
type Route struct {
	Path    string
	Pattern string            // source pattern, "" for plain routes
	Params  map[string]string // parameter values used in expansion
}

// expandRoutes turns the configured route list into concrete routes plus the
// per-route metadata layer consumed by the resolver. Parameter values are
// exposed to templates as param_<name> metadata keys, and per-value metadata
// from the configuration is merged on top of the pattern's own.
func expandRoutes(cfgRoutes []config.RouteConfig) ([]Route, map[string]map[string]string) {
	var concrete []Route
	routeMeta := make(map[string]map[string]string)

	for _, rc := range cfgRoutes {
		if len(rc.Params) == 0 {
			concrete = append(concrete, Route{Path: rc.Path})
			if len(rc.Metadata) > 0 {
				routeMeta[rc.Path] = rc.Metadata
			}
			continue
		}

		params := routes.NewParams()
		for name, values := range rc.Params {
			params.AddValues(name, values...)
		}
		for name, byValue := range rc.ParamMetadata {
			for value, md := range byValue {
				params.AddMetadata(name, value, md)
			}
		}

		for _, exp := range routes.Expand(rc.Path, params) {
			concrete = append(concrete, Route{
				Path:    exp.Path,
				Pattern: exp.Pattern,
				Params:  exp.Params,
			})

			merged := make(map[string]string, len(rc.Metadata)+2*len(exp.Params))
			for k, v := range rc.Metadata {
				merged[k] = v
			}
			for name, value := range exp.Params {
				merged["param_"+name] = value
				if md, ok := params.ValueMetadata(name, value); ok {
					for k, v := range md {
						merged[k] = v
					}
				}
			}
			routeMeta[exp.Path] = merged
		}
	}
	return concrete, routeMeta
}
