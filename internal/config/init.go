package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Site: SiteConfig{
			Title:       "My Site",
			BaseURL:     "https://example.com",
			Description: "A statically generated site",
		},
		Output: OutputConfig{
			Directory: "./dist",
			Clean:     true,
		},
		Template: TemplateConfig{
			Path: "templates/page.html",
		},
		Content: ContentConfig{
			Source: "markdown",
			Dir:    "content",
		},
		Metadata: map[string]string{
			"author": "Site Team",
		},
		Routes: []RouteConfig{
			{Path: "/", Metadata: map[string]string{"title": "Home"}},
			{Path: "/about", Metadata: map[string]string{"title": "About"}},
			{
				Path:   "/docs/:section",
				Params: map[string][]string{"section": {"install", "usage"}},
			},
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
