package generator

import (
	"fmt"
	"html"
)

// TitleGenerator produces the document title tag from the "title" metadata
// key.
type TitleGenerator struct{}

func (TitleGenerator) Name() string { return "title" }

func (TitleGenerator) SupportedOutputs() []string {
	return []string{"title", "title_text"}
}

func (TitleGenerator) Generate(key, _ string, _ string, metadata map[string]string) (string, error) {
	title := metadata["title"]
	switch key {
	case "title":
		return fmt.Sprintf("<title>%s</title>", html.EscapeString(title)), nil
	case "title_text":
		return title, nil
	default:
		return "", fmt.Errorf("title generator does not support key %q", key)
	}
}
