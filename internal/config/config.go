// Package config loads and validates the site build configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagegen/internal/errors"
)

// Config represents the application configuration.
type Config struct {
	Site       SiteConfig        `yaml:"site"`
	Output     OutputConfig      `yaml:"output"`
	Template   TemplateConfig    `yaml:"template"`
	Content    ContentConfig     `yaml:"content"`
	Directives DirectivesConfig  `yaml:"directives"`
	Variables  VariablesConfig   `yaml:"variables"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
	Routes     []RouteConfig     `yaml:"routes"`
	Build      BuildConfig       `yaml:"build"`
	Logging    LoggingConfig     `yaml:"logging"`
	Metrics    MetricsConfig     `yaml:"metrics"`
}

// SiteConfig carries site-wide identity used by the generators.
type SiteConfig struct {
	Title         string `yaml:"title"`
	Name          string `yaml:"name,omitempty"`
	BaseURL       string `yaml:"base_url"`
	Description   string `yaml:"description,omitempty"`
	Keywords      string `yaml:"keywords,omitempty"`
	DefaultImage  string `yaml:"default_image,omitempty"`
	TwitterHandle string `yaml:"twitter_handle,omitempty"`
	Robots        string `yaml:"robots,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory  string `yaml:"directory"`
	Clean      bool   `yaml:"clean"`
	PathPrefix string `yaml:"path_prefix,omitempty"`
}

// TemplateConfig selects the HTML shell for every route. Path wins over
// Inline; with neither set a built-in minimal template is used.
type TemplateConfig struct {
	Path   string `yaml:"path,omitempty"`
	Inline string `yaml:"inline,omitempty"`
}

// ContentConfig selects where route bodies come from.
type ContentConfig struct {
	Source string `yaml:"source"` // none|files|markdown
	Dir    string `yaml:"dir,omitempty"`
}

// DirectivesConfig tunes the markup directive rewriter.
type DirectivesConfig struct {
	Prefix string `yaml:"prefix,omitempty"`
}

// VariablesConfig tunes the template variable delimiters.
type VariablesConfig struct {
	Open  string `yaml:"open,omitempty"`
	Close string `yaml:"close,omitempty"`
}

// RouteConfig describes one route, or a parameterized family of routes.
type RouteConfig struct {
	Path     string            `yaml:"path"`
	Metadata map[string]string `yaml:"metadata,omitempty"`

	// Params expands a ":name" pattern path into one concrete route per
	// value combination.
	Params map[string][]string `yaml:"params,omitempty"`

	// ParamMetadata attaches extra metadata per parameter value, keyed
	// name -> value -> metadata.
	ParamMetadata map[string]map[string]map[string]string `yaml:"param_metadata,omitempty"`
}

// BuildConfig represents build execution configuration.
type BuildConfig struct {
	Concurrency int    `yaml:"concurrency,omitempty"`
	FailFast    bool   `yaml:"fail_fast,omitempty"`
	HistoryDB   string `yaml:"history_db,omitempty"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug|info|warn|error
	Format string `yaml:"format,omitempty"` // text|json
}

// MetricsConfig enables Prometheus metrics collection. Listen is only served
// by long-running commands (watch); one-shot builds still record so metric
// tests and embedders can scrape the registry.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Listen  string `yaml:"listen,omitempty"`
}

// Load loads configuration from the specified file. A .env file alongside
// the process is applied first so ${VAR} references in the YAML resolve.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
