package generator

import (
	"fmt"
	"html"
	"strings"
)

// TwitterCardGenerator produces Twitter Card meta tags. The card type
// defaults to summary_large_image when the route metadata does not set one.
type TwitterCardGenerator struct {
	SiteHandle  string
	DefaultCard string
}

func (g *TwitterCardGenerator) Name() string { return "twitter_card" }

func (g *TwitterCardGenerator) SupportedOutputs() []string {
	return []string{"twitter_card", "twitter:card", "twitter:site", "twitter:title", "twitter:description", "twitter:image"}
}

func (g *TwitterCardGenerator) Generate(key, _ string, _ string, metadata map[string]string) (string, error) {
	switch key {
	case "twitter_card":
		var b strings.Builder
		b.WriteString(twitterTag("twitter:card", g.card(metadata)))
		if g.SiteHandle != "" {
			b.WriteString(twitterTag("twitter:site", g.SiteHandle))
		}
		b.WriteString(twitterTag("twitter:title", metadata["title"]))
		b.WriteString(twitterTag("twitter:description", metadata["description"]))
		if image, ok := metadata["twitter:image"]; ok {
			b.WriteString(twitterTag("twitter:image", image))
		}
		return b.String(), nil

	case "twitter:card":
		return twitterTag(key, g.card(metadata)), nil
	case "twitter:site":
		return twitterTag(key, g.SiteHandle), nil
	case "twitter:title":
		return twitterTag(key, metadata["title"]), nil
	case "twitter:description":
		return twitterTag(key, metadata["description"]), nil
	case "twitter:image":
		return twitterTag(key, metadata["twitter:image"]), nil

	default:
		return "", fmt.Errorf("twitter card generator does not support key %q", key)
	}
}

func (g *TwitterCardGenerator) card(metadata map[string]string) string {
	if card, ok := metadata["twitter:card"]; ok {
		return card
	}
	if g.DefaultCard != "" {
		return g.DefaultCard
	}
	return "summary_large_image"
}

func twitterTag(name, content string) string {
	return fmt.Sprintf("<meta name=\"%s\" content=\"%s\">\n", name, html.EscapeString(content))
}
