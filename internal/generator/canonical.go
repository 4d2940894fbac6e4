package generator

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/language"
)

// CanonicalLinksGenerator produces the canonical link element plus hreflang
// alternates for translated routes. Alternates come from the "alternates"
// metadata key as comma separated lang=url pairs; pairs with a language tag
// that does not parse are skipped with an error so the registry can surface
// a warning for that key alone.
type CanonicalLinksGenerator struct {
	BaseURL string
}

func (g *CanonicalLinksGenerator) Name() string { return "canonical_links" }

func (g *CanonicalLinksGenerator) SupportedOutputs() []string {
	return []string{"canonical_links", "canonical", "canonical_url", "alternate_links"}
}

func (g *CanonicalLinksGenerator) Generate(key, route, _ string, metadata map[string]string) (string, error) {
	switch key {
	case "canonical_links":
		alternates, err := g.alternateLinks(route, metadata)
		if err != nil {
			return "", err
		}
		return g.canonicalLink(route, metadata) + alternates, nil
	case "canonical":
		return g.canonicalLink(route, metadata), nil
	case "canonical_url":
		return g.canonicalURL(route, metadata), nil
	case "alternate_links":
		return g.alternateLinks(route, metadata)
	default:
		return "", fmt.Errorf("canonical links generator does not support key %q", key)
	}
}

func (g *CanonicalLinksGenerator) canonicalURL(route string, metadata map[string]string) string {
	if canonical, ok := metadata["canonical"]; ok {
		return canonical
	}
	return strings.TrimRight(g.BaseURL, "/") + route
}

func (g *CanonicalLinksGenerator) canonicalLink(route string, metadata map[string]string) string {
	return fmt.Sprintf("<link rel=\"canonical\" href=\"%s\">\n", html.EscapeString(g.canonicalURL(route, metadata)))
}

func (g *CanonicalLinksGenerator) alternateLinks(route string, metadata map[string]string) (string, error) {
	raw, ok := metadata["alternates"]
	if !ok || strings.TrimSpace(raw) == "" {
		return "", nil
	}

	var b strings.Builder
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		lang, url, found := strings.Cut(pair, "=")
		if !found {
			return "", fmt.Errorf("alternate entry %q is not a lang=url pair", pair)
		}
		lang = strings.TrimSpace(lang)
		url = strings.TrimSpace(url)
		if lang != "x-default" {
			if _, err := language.Parse(lang); err != nil {
				return "", fmt.Errorf("alternate language tag %q: %w", lang, err)
			}
		}
		fmt.Fprintf(&b, "<link rel=\"alternate\" hreflang=\"%s\" href=\"%s\">\n",
			html.EscapeString(lang), html.EscapeString(url))
	}

	if !strings.Contains(raw, "x-default") {
		fmt.Fprintf(&b, "<link rel=\"alternate\" hreflang=\"x-default\" href=\"%s\">\n",
			html.EscapeString(g.defaultURL(route, metadata)))
	}
	return b.String(), nil
}

// defaultURL strips a leading two letter language segment from the route so
// /en/docs and /de/docs share /docs as their x-default target.
func (g *CanonicalLinksGenerator) defaultURL(route string, metadata map[string]string) string {
	path := route
	trimmed := strings.TrimPrefix(path, "/")
	if seg, rest, found := strings.Cut(trimmed, "/"); found && len(seg) == 2 {
		if _, err := language.Parse(seg); err == nil {
			path = "/" + rest
		}
	}
	if canonical, ok := metadata["canonical"]; ok && path == route {
		return canonical
	}
	return strings.TrimRight(g.BaseURL, "/") + path
}
