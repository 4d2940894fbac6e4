package generator

import (
	"fmt"
	"html"
	"strings"
)

// MetaTagGenerator produces the basic SEO meta tag block: description,
// keywords, and an optional canonical link when the metadata carries one.
type MetaTagGenerator struct {
	DefaultDescription string
	DefaultKeywords    []string
}

func (g *MetaTagGenerator) Name() string { return "meta_tags" }

func (g *MetaTagGenerator) SupportedOutputs() []string {
	return []string{"meta_tags", "description", "keywords", "canonical"}
}

func (g *MetaTagGenerator) Generate(key, _ string, _ string, metadata map[string]string) (string, error) {
	switch key {
	case "meta_tags":
		var b strings.Builder
		b.WriteString(g.descriptionTag(metadata))
		b.WriteString(g.keywordsTag(metadata))
		if canonical, ok := metadata["canonical"]; ok {
			fmt.Fprintf(&b, "<link rel=\"canonical\" href=\"%s\">\n", html.EscapeString(canonical))
		}
		return b.String(), nil

	case "description":
		return g.descriptionTag(metadata), nil

	case "keywords":
		return g.keywordsTag(metadata), nil

	case "canonical":
		if canonical, ok := metadata["canonical"]; ok {
			return fmt.Sprintf("<link rel=\"canonical\" href=\"%s\">\n", html.EscapeString(canonical)), nil
		}
		return "", nil

	default:
		return "", fmt.Errorf("meta tag generator does not support key %q", key)
	}
}

func (g *MetaTagGenerator) descriptionTag(metadata map[string]string) string {
	description, ok := metadata["description"]
	if !ok {
		description = g.DefaultDescription
	}
	return fmt.Sprintf("<meta name=\"description\" content=\"%s\">\n", html.EscapeString(description))
}

func (g *MetaTagGenerator) keywordsTag(metadata map[string]string) string {
	keywords, ok := metadata["keywords"]
	if !ok {
		keywords = strings.Join(g.DefaultKeywords, ", ")
	}
	return fmt.Sprintf("<meta name=\"keywords\" content=\"%s\">\n", html.EscapeString(keywords))
}
