package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSONLDGenerator emits a script block with schema.org structured data. The
// schema type is chosen from the "schema_type" metadata key and falls back to
// WebPage.
type JSONLDGenerator struct {
	SiteName string
	BaseURL  string
}

func (g *JSONLDGenerator) Name() string { return "json_ld" }

func (g *JSONLDGenerator) SupportedOutputs() []string {
	return []string{"json_ld"}
}

func (g *JSONLDGenerator) Generate(key, route, _ string, metadata map[string]string) (string, error) {
	if key != "json_ld" {
		return "", fmt.Errorf("json-ld generator does not support key %q", key)
	}

	doc, err := g.document(route, metadata)
	if err != nil {
		return "", err
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode json-ld document: %w", err)
	}
	return fmt.Sprintf("<script type=\"application/ld+json\">\n%s\n</script>\n", encoded), nil
}

func (g *JSONLDGenerator) document(route string, metadata map[string]string) (map[string]any, error) {
	schemaType := metadata["schema_type"]
	if schemaType == "" {
		schemaType = "WebPage"
	}

	doc := map[string]any{
		"@context":    "https://schema.org",
		"@type":       schemaType,
		"name":        metadata["title"],
		"description": metadata["description"],
		"url":         g.url(route, metadata),
	}

	switch schemaType {
	case "Article":
		doc["headline"] = metadata["title"]
		if author, ok := metadata["author"]; ok {
			doc["author"] = map[string]any{"@type": "Person", "name": author}
		}
		if published, ok := metadata["published"]; ok {
			doc["datePublished"] = published
		}
		if modified, ok := metadata["modified"]; ok {
			doc["dateModified"] = modified
		}
	case "Organization":
		if g.SiteName != "" {
			doc["name"] = g.SiteName
		}
		if logo, ok := metadata["logo"]; ok {
			doc["logo"] = logo
		}
	case "BreadcrumbList":
		items, err := breadcrumbItems(route, g.BaseURL)
		if err != nil {
			return nil, err
		}
		doc["itemListElement"] = items
		delete(doc, "description")
	}

	if g.SiteName != "" && schemaType != "Organization" {
		doc["publisher"] = map[string]any{"@type": "Organization", "name": g.SiteName}
	}
	return doc, nil
}

func (g *JSONLDGenerator) url(route string, metadata map[string]string) string {
	if url, ok := metadata["url"]; ok {
		return url
	}
	return strings.TrimRight(g.BaseURL, "/") + route
}

func breadcrumbItems(route, baseURL string) ([]map[string]any, error) {
	if !strings.HasPrefix(route, "/") {
		return nil, fmt.Errorf("breadcrumb route %q is not absolute", route)
	}
	base := strings.TrimRight(baseURL, "/")

	items := []map[string]any{{
		"@type":    "ListItem",
		"position": 1,
		"name":     "Home",
		"item":     base + "/",
	}}
	path := ""
	for _, seg := range strings.Split(strings.Trim(route, "/"), "/") {
		if seg == "" {
			continue
		}
		path += "/" + seg
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": len(items) + 1,
			"name":     seg,
			"item":     base + path,
		})
	}
	return items, nil
}
