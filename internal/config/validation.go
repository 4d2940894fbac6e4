package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/pagegen/internal/errors"
)

var validContentSources = map[string]bool{"none": true, "files": true, "markdown": true}
var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validLogFormats = map[string]bool{"text": true, "json": true}

// Validate checks the configuration for contradictions and missing required
// fields. It assumes ApplyDefaults already ran.
func (c *Config) Validate() error {
	if len(c.Routes) == 0 {
		return errors.ConfigRequired("routes")
	}
	if c.Template.Path != "" && c.Template.Inline != "" {
		return errors.ValidationFailed("template", "path and inline are mutually exclusive")
	}
	if !validContentSources[c.Content.Source] {
		return errors.ValidationFailed("content.source",
			fmt.Sprintf("unknown source %q (want none, files or markdown)", c.Content.Source))
	}
	if c.Content.Source != "none" && c.Content.Dir == "" {
		return errors.ConfigRequired("content.dir")
	}
	if !validLogLevels[c.Logging.Level] {
		return errors.ValidationFailed("logging.level", fmt.Sprintf("unknown level %q", c.Logging.Level))
	}
	if !validLogFormats[c.Logging.Format] {
		return errors.ValidationFailed("logging.format", fmt.Sprintf("unknown format %q", c.Logging.Format))
	}

	seen := make(map[string]bool, len(c.Routes))
	for i, route := range c.Routes {
		if route.Path == "" {
			return errors.ValidationFailed(fmt.Sprintf("routes[%d].path", i), "path must not be empty")
		}
		if seen[route.Path] {
			return errors.ValidationFailed(fmt.Sprintf("routes[%d].path", i),
				fmt.Sprintf("duplicate route %s", route.Path))
		}
		seen[route.Path] = true

		if err := validateRouteParams(i, route); err != nil {
			return err
		}
	}
	return nil
}

func validateRouteParams(i int, route RouteConfig) error {
	hasPattern := strings.Contains(route.Path, ":")
	if hasPattern && len(route.Params) == 0 {
		return errors.ValidationFailed(fmt.Sprintf("routes[%d]", i),
			fmt.Sprintf("pattern %s has no params", route.Path))
	}
	if !hasPattern && len(route.Params) > 0 {
		return errors.ValidationFailed(fmt.Sprintf("routes[%d]", i),
			fmt.Sprintf("params given but %s has no :name segments", route.Path))
	}
	for name, values := range route.Params {
		if !strings.Contains(route.Path, ":"+name) {
			return errors.ValidationFailed(fmt.Sprintf("routes[%d].params.%s", i, name),
				fmt.Sprintf("pattern %s has no :%s segment", route.Path, name))
		}
		if len(values) == 0 {
			return errors.ValidationFailed(fmt.Sprintf("routes[%d].params.%s", i, name),
				"at least one value required")
		}
	}
	for name := range route.ParamMetadata {
		if _, ok := route.Params[name]; !ok {
			return errors.ValidationFailed(fmt.Sprintf("routes[%d].param_metadata.%s", i, name),
				"metadata for undeclared parameter")
		}
	}
	return nil
}
