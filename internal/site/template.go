package site

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/pagegen/internal/config"
)

// defaultTemplate is the built-in page shell used when the configuration
// names no template. It exposes the standard head blocks and a content slot.
const defaultTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{title}}
{{meta_tags}}
{{canonical_links}}
{{open_graph}}
{{twitter_card}}
{{robots_meta}}
{{json_ld}}
</head>
<body>
<main data-ssg="content"></main>
</body>
</html>
`

// loadTemplate resolves the page template, preferring an on-disk file over
// inline configuration over the built-in default.
func loadTemplate(tc config.TemplateConfig) (string, error) {
	if tc.Path != "" {
		data, err := os.ReadFile(tc.Path)
		if err != nil {
			return "", fmt.Errorf("read template %s: %w", tc.Path, err)
		}
		return string(data), nil
	}
	if tc.Inline != "" {
		return tc.Inline, nil
	}
	return defaultTemplate, nil
}
