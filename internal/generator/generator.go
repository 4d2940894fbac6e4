// Package generator defines the content producers that contribute named HTML
// fragments (title tag, meta tags, social cards, structured data) to a
// route's resolved value set, and the ordered registry that runs them.
package generator

import (
	"log/slog"

	"git.home.luguber.info/inful/pagegen/internal/errors"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
)

// Generator produces an HTML fragment for a named output key. A generator is
// asked for its primary key (Name) and, when it also implements MultiOutput,
// for each additional supported key. Implementations must be safe for
// concurrent use; route processing may call Generate from multiple
// goroutines.
type Generator interface {
	// Name returns the generator's primary output key.
	Name() string

	// Generate produces the fragment for one output key. route is the
	// concrete route path, content the pre-generation rendered HTML.
	Generate(key, route, content string, metadata map[string]string) (string, error)
}

// MultiOutput is an optional capability for generators that answer more keys
// than their primary name.
type MultiOutput interface {
	SupportedOutputs() []string
}

// supportedKeys lists every key a generator answers, primary key first.
func supportedKeys(g Generator) []string {
	keys := []string{g.Name()}
	if mo, ok := g.(MultiOutput); ok {
		for _, k := range mo.SupportedOutputs() {
			if k == g.Name() {
				continue
			}
			keys = append(keys, k)
		}
	}
	return keys
}

// Registry holds generators in registration order. Registration order is
// semantically significant: when two generators claim the same output key the
// later registrant's value wins in RunAll's accumulation. Callers should
// order registrations accordingly rather than rely on it.
type Registry struct {
	generators []Generator
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a generator. No deduplication is performed.
func (r *Registry) Add(g Generator) {
	if g != nil {
		r.generators = append(r.generators, g)
	}
}

// Len returns the number of registered generators.
func (r *Registry) Len() int { return len(r.generators) }

// Generators returns a read-only view of the registration order.
func (r *Registry) Generators() []Generator {
	out := make([]Generator, len(r.generators))
	copy(out, r.generators)
	return out
}

// RunAll asks every generator, in registration order, for each key it
// supports and accumulates the results into one key->HTML map for the route.
// A failed key is omitted and reported as a warning; each key resolves
// independently, so one key's failure never suppresses a sibling key from the
// same generator.
func (r *Registry) RunAll(route, content string, metadata map[string]string) (map[string]string, []error) {
	outputs := make(map[string]string)
	var warnings []error

	for _, g := range r.generators {
		for _, key := range supportedKeys(g) {
			result, err := g.Generate(key, route, content, metadata)
			if err != nil {
				warn := errors.GenerationError(g.Name(), key, err)
				warnings = append(warnings, warn)
				slog.Warn("generator output failed",
					logfields.Generator(g.Name()),
					logfields.OutputKey(key),
					logfields.Route(route),
					logfields.Error(err))
				continue
			}
			outputs[key] = result
		}
	}
	return outputs, warnings
}
