package config

import (
	"runtime"
	"strings"
)

// ApplyDefaults fills unset fields with their defaults. Called by Load; tests
// constructing a Config by hand should call it too.
func (c *Config) ApplyDefaults() {
	if c.Site.Name == "" {
		c.Site.Name = c.Site.Title
	}
	if c.Site.Robots == "" {
		c.Site.Robots = "index, follow"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./dist"
	}
	if c.Content.Source == "" {
		c.Content.Source = "none"
	}
	if c.Directives.Prefix == "" {
		c.Directives.Prefix = "data-ssg"
	}
	if c.Variables.Open == "" {
		c.Variables.Open = "{{"
	}
	if c.Variables.Close == "" {
		c.Variables.Close = "}}"
	}
	if c.Build.Concurrency <= 0 {
		c.Build.Concurrency = runtime.NumCPU()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		c.Metrics.Listen = ":9464"
	}

	// Route paths are normalized to a leading slash so metadata lookup and
	// output path derivation agree on the key.
	for i := range c.Routes {
		if c.Routes[i].Path != "" && !strings.HasPrefix(c.Routes[i].Path, "/") {
			c.Routes[i].Path = "/" + c.Routes[i].Path
		}
	}
}
