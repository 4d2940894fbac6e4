package generator

import (
	"fmt"
	"html"
	"strings"
)

// OpenGraphGenerator produces Open Graph meta tags for social sharing
// previews. Individual og:* properties are also exposed as separate output
// keys.
type OpenGraphGenerator struct {
	SiteName     string
	DefaultImage string
}

func (g *OpenGraphGenerator) Name() string { return "open_graph" }

func (g *OpenGraphGenerator) SupportedOutputs() []string {
	return []string{"open_graph", "og:title", "og:description", "og:url", "og:image", "og:site_name"}
}

func (g *OpenGraphGenerator) Generate(key, _ string, _ string, metadata map[string]string) (string, error) {
	switch key {
	case "open_graph":
		var b strings.Builder
		b.WriteString("<meta property=\"og:type\" content=\"website\">\n")
		b.WriteString(ogTag("og:title", metadata["title"]))
		b.WriteString(ogTag("og:description", metadata["description"]))
		b.WriteString(ogTag("og:url", metadata["url"]))
		b.WriteString(ogTag("og:image", g.image(metadata)))
		b.WriteString(ogTag("og:site_name", g.SiteName))
		return b.String(), nil

	case "og:title":
		return ogTag(key, metadata["title"]), nil
	case "og:description":
		return ogTag(key, metadata["description"]), nil
	case "og:url":
		return ogTag(key, metadata["url"]), nil
	case "og:image":
		return ogTag(key, g.image(metadata)), nil
	case "og:site_name":
		return ogTag(key, g.SiteName), nil

	default:
		return "", fmt.Errorf("open graph generator does not support key %q", key)
	}
}

func (g *OpenGraphGenerator) image(metadata map[string]string) string {
	if image, ok := metadata["og:image"]; ok {
		return image
	}
	return g.DefaultImage
}

func ogTag(property, content string) string {
	return fmt.Sprintf("<meta property=\"%s\" content=\"%s\">\n", property, html.EscapeString(content))
}
