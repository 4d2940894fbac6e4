package generator

import (
	"fmt"
	"html"
)

// RobotsMetaGenerator produces the robots directive meta tag. The "robots"
// metadata key overrides the configured default.
type RobotsMetaGenerator struct {
	DefaultRobots string
}

func (g *RobotsMetaGenerator) Name() string { return "robots_meta" }

func (g *RobotsMetaGenerator) SupportedOutputs() []string {
	return []string{"robots_meta", "robots"}
}

func (g *RobotsMetaGenerator) Generate(key, _ string, _ string, metadata map[string]string) (string, error) {
	robots, ok := metadata["robots"]
	if !ok {
		robots = g.DefaultRobots
	}

	switch key {
	case "robots_meta":
		return fmt.Sprintf("<meta name=\"robots\" content=\"%s\">\n", html.EscapeString(robots)), nil
	case "robots":
		return robots, nil
	default:
		return "", fmt.Errorf("robots meta generator does not support key %q", key)
	}
}
