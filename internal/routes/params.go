// Package routes expands configured route patterns with path parameters into
// the concrete route paths the generation pipeline processes.
package routes

import (
	"sort"
	"strings"
)

// Params defines parameter names, their allowed values, and optional metadata
// attached to specific values for one route pattern (e.g. "/crate/:id").
type Params struct {
	// Values maps a parameter name to its allowed values.
	Values map[string][]string

	// Metadata holds per-value metadata, keyed "name=value".
	Metadata map[string]map[string]string
}

// NewParams constructs an empty Params.
func NewParams() *Params {
	return &Params{
		Values:   map[string][]string{},
		Metadata: map[string]map[string]string{},
	}
}

// AddValues registers allowed values for a parameter.
func (p *Params) AddValues(name string, values ...string) *Params {
	p.Values[name] = append(p.Values[name], values...)
	return p
}

// AddMetadata attaches metadata to one parameter value.
func (p *Params) AddMetadata(name, value string, md map[string]string) *Params {
	p.Metadata[name+"="+value] = md
	return p
}

// ValueMetadata returns the metadata attached to one parameter value, if any.
func (p *Params) ValueMetadata(name, value string) (map[string]string, bool) {
	md, ok := p.Metadata[name+"="+value]
	return md, ok
}

// Combinations enumerates every combination of parameter values. Parameter
// names and values are iterated in sorted order so expansion is deterministic
// run to run.
func (p *Params) Combinations() []map[string]string {
	if len(p.Values) == 0 {
		return nil
	}

	names := make([]string, 0, len(p.Values))
	for name := range p.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	combos := []map[string]string{{}}
	for _, name := range names {
		values := append([]string(nil), p.Values[name]...)
		sort.Strings(values)
		next := make([]map[string]string, 0, len(combos)*len(values))
		for _, combo := range combos {
			for _, v := range values {
				c := make(map[string]string, len(combo)+1)
				for k, cv := range combo {
					c[k] = cv
				}
				c[name] = v
				next = append(next, c)
			}
		}
		combos = next
	}
	return combos
}

// ConstructPath substitutes ":name" placeholders in a route pattern with the
// given parameter values.
func ConstructPath(pattern string, params map[string]string) string {
	result := pattern
	for name, value := range params {
		result = strings.ReplaceAll(result, ":"+name, value)
	}
	return result
}

// Expansion is one concrete route produced from a pattern.
type Expansion struct {
	Pattern string            // the source pattern
	Path    string            // the concrete route path
	Params  map[string]string // parameter values used
}

// Expand produces every concrete route for a pattern, sorted by path.
func Expand(pattern string, params *Params) []Expansion {
	if params == nil {
		return nil
	}
	var out []Expansion
	for _, combo := range params.Combinations() {
		out = append(out, Expansion{
			Pattern: pattern,
			Path:    ConstructPath(pattern, combo),
			Params:  combo,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
