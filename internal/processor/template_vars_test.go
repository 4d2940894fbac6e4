package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateVariablesSubstitutesMetadata(t *testing.T) {
	p := &TemplateVariables{}
	out, err := p.Process("<h1>{{title}}</h1>", map[string]string{"title": "Home"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Home</h1>", out)
}

func TestTemplateVariablesGeneratedShadowsMetadata(t *testing.T) {
	p := &TemplateVariables{}
	out, err := p.Process("{{title}}",
		map[string]string{"title": "from metadata"},
		map[string]string{"title": "from generator"}, "")
	require.NoError(t, err)
	assert.Equal(t, "from generator", out)
}

func TestTemplateVariablesContentKey(t *testing.T) {
	p := &TemplateVariables{}
	out, err := p.Process("<main>{{content}}</main>", nil, nil, "<p>body</p>")
	require.NoError(t, err)
	assert.Equal(t, "<main><p>body</p></main>", out)
}

func TestTemplateVariablesUnknownKeyLeftLiteral(t *testing.T) {
	p := &TemplateVariables{}
	out, err := p.Process("before {{missing}} after", map[string]string{}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "before {{missing}} after", out)
}

func TestTemplateVariablesSinglePass(t *testing.T) {
	p := &TemplateVariables{}
	// A substituted value containing placeholder syntax must not be expanded.
	out, err := p.Process("{{outer}}", map[string]string{
		"outer": "lit {{inner}}",
		"inner": "should not appear",
	}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "lit {{inner}}", out)
}

func TestTemplateVariablesWhitespaceInsideDelimiters(t *testing.T) {
	p := &TemplateVariables{}
	out, err := p.Process("{{ title }}", map[string]string{"title": "Home"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "Home", out)
}

func TestTemplateVariablesUnterminatedDelimiterLeftLiteral(t *testing.T) {
	p := &TemplateVariables{}
	out, err := p.Process("ok {{title", map[string]string{"title": "Home"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "ok {{title", out)
}

func TestTemplateVariablesCustomDelimiters(t *testing.T) {
	p := &TemplateVariables{Open: "[[", Close: "]]"}
	out, err := p.Process("[[title]] and {{title}}", map[string]string{"title": "Home"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "Home and {{title}}", out)
}

func TestTemplateVariablesIdempotent(t *testing.T) {
	p := &TemplateVariables{}
	meta := map[string]string{"title": "Home", "author": "alice"}

	once, err := p.Process("<h1>{{title}}</h1><p>{{author}} {{missing}}</p>", meta, nil, "<em>body</em>")
	require.NoError(t, err)

	// Re-running on already-substituted output must change nothing.
	twice, err := p.Process(once, meta, nil, "<em>body</em>")
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestTemplateVariablesMultipleOccurrences(t *testing.T) {
	p := &TemplateVariables{}
	out, err := p.Process("{{a}}-{{b}}-{{a}}", map[string]string{"a": "1", "b": "2"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "1-2-1", out)
}
