package processor

import "strings"

// TemplateVariables substitutes {{key}} placeholders in the document.
// Generated outputs shadow metadata on key collisions, the "content" key maps
// to the rendered route body, and an unknown key is left literal so authors
// can see what failed to resolve. Substitution is a single pass: values just
// substituted are never rescanned, so placeholder-shaped text inside a value
// comes through untouched.
type TemplateVariables struct {
	// Open and Close override the {{ and }} delimiters when set.
	Open  string
	Close string
}

func (p *TemplateVariables) Name() string { return "template_variables" }

func (p *TemplateVariables) delimiters() (string, string) {
	opening, closing := p.Open, p.Close
	if opening == "" {
		opening = "{{"
	}
	if closing == "" {
		closing = "}}"
	}
	return opening, closing
}

func (p *TemplateVariables) Process(html string, metadata, generated map[string]string, content string) (string, error) {
	opening, closing := p.delimiters()

	var b strings.Builder
	b.Grow(len(html))

	rest := html
	for {
		i := strings.Index(rest, opening)
		if i < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:i])
		after := rest[i+len(opening):]

		j := strings.Index(after, closing)
		if j < 0 {
			// Unterminated placeholder: keep the remainder literal.
			b.WriteString(rest[i:])
			return b.String(), nil
		}

		key := strings.TrimSpace(after[:j])
		if value, ok := p.lookup(key, metadata, generated, content); ok {
			b.WriteString(value)
		} else {
			b.WriteString(rest[i : i+len(opening)+j+len(closing)])
		}
		rest = after[j+len(closing):]
	}
}

func (p *TemplateVariables) lookup(key string, metadata, generated map[string]string, content string) (string, bool) {
	if key == "content" {
		return content, true
	}
	if value, ok := generated[key]; ok {
		return value, true
	}
	if value, ok := metadata[key]; ok {
		return value, true
	}
	return "", false
}
