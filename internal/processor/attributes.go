package processor

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	xhtml "golang.org/x/net/html"
)

// Attributes rewrites elements carrying markup directives:
//
//	data-ssg="key"             replace the element's children with the value
//	data-ssg-ATTR="key"        set attribute ATTR to the value
//	data-ssg-placeholder="key" replace the whole element with the value
//
// The directive attributes themselves are always stripped, hit or miss. A
// miss (key not in the resolved set) leaves the element's original markup in
// place, so templates degrade to their authored fallback content. On a meta
// element with a content attribute the content directive sets that attribute
// instead of injecting children. The key "content" is reserved on the first
// form only, where it always injects the rendered route body; attribute and
// placeholder directives resolve "content" like any other key.
//
// The rewriter streams the document through the x/net/html tokenizer and
// emits raw token bytes untouched for every element without directives, so
// documents round-trip without wholesale reformatting.
type Attributes struct {
	// Prefix overrides the data-ssg directive prefix when set.
	Prefix string
}

func (p *Attributes) Name() string { return "attributes" }

func (p *Attributes) prefix() string {
	if p.Prefix != "" {
		return p.Prefix
	}
	return "data-ssg"
}

// voidElements never carry children, so they neither open a skip scope nor
// receive injected content.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func (p *Attributes) Process(doc string, metadata, generated map[string]string, content string) (string, error) {
	prefix := p.prefix()
	if !strings.Contains(doc, prefix) {
		return doc, nil
	}

	resolve := func(key string) (string, bool) {
		if v, ok := generated[key]; ok {
			return v, true
		}
		v, ok := metadata[key]
		return v, ok
	}

	z := xhtml.NewTokenizer(strings.NewReader(doc))
	var b strings.Builder
	b.Grow(len(doc))
	prefixBytes := []byte(prefix)

	for {
		tt := z.Next()
		switch tt {
		case xhtml.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", fmt.Errorf("tokenize document: %w", err)
			}
			return b.String(), nil

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			raw := z.Raw()
			if !bytes.Contains(raw, prefixBytes) {
				b.Write(raw)
				continue
			}
			if err := p.rewriteElement(z, &b, tt, prefix, content, resolve); err != nil {
				return "", err
			}

		default:
			b.Write(z.Raw())
		}
	}
}

// directive is one parsed data-ssg attribute on an element.
type directive struct {
	// target is the attribute to set, "" for the content directive and
	// "placeholder" for element replacement.
	target string
	key    string
}

func (p *Attributes) rewriteElement(z *xhtml.Tokenizer, b *strings.Builder, tt xhtml.TokenType, prefix, content string, resolve func(string) (string, bool)) error {
	tok := z.Token()

	var directives []directive
	kept := tok.Attr[:0]
	for _, attr := range tok.Attr {
		switch {
		case attr.Key == prefix:
			directives = append(directives, directive{target: "", key: attr.Val})
		case strings.HasPrefix(attr.Key, prefix+"-"):
			directives = append(directives, directive{
				target: strings.TrimPrefix(attr.Key, prefix+"-"),
				key:    attr.Val,
			})
		default:
			kept = append(kept, attr)
		}
	}
	tok.Attr = kept

	if len(directives) == 0 {
		writeTag(b, tok, tt)
		return nil
	}

	// Placeholder replacement swallows the element entirely on a hit.
	for _, d := range directives {
		if d.target != "placeholder" {
			continue
		}
		if value, ok := resolve(d.key); ok {
			b.WriteString(value)
			if tt == xhtml.StartTagToken && !voidElements[tok.Data] {
				return skipElement(z, tok.Data)
			}
			return nil
		}
	}

	injectChildren := ""
	haveInjection := false
	for _, d := range directives {
		switch d.target {
		case "placeholder":
			// Miss: element kept with directives stripped.
		case "":
			// "content" is reserved for this form only: it always means
			// the rendered route body, never a metadata lookup.
			value, ok := content, true
			if d.key != "content" {
				value, ok = resolve(d.key)
			}
			if !ok {
				continue
			}
			if idx := attrIndex(tok.Attr, "content"); tok.Data == "meta" && idx >= 0 {
				tok.Attr[idx].Val = value
			} else if tt == xhtml.StartTagToken && !voidElements[tok.Data] {
				injectChildren = value
				haveInjection = true
			}
		default:
			value, ok := resolve(d.key)
			if !ok {
				continue
			}
			if idx := attrIndex(tok.Attr, d.target); idx >= 0 {
				tok.Attr[idx].Val = value
			} else {
				tok.Attr = append(tok.Attr, xhtml.Attribute{Key: d.target, Val: value})
			}
		}
	}

	writeTag(b, tok, tt)
	if haveInjection {
		b.WriteString(injectChildren)
		fmt.Fprintf(b, "</%s>", tok.Data)
		return skipElement(z, tok.Data)
	}
	return nil
}

func attrIndex(attrs []xhtml.Attribute, key string) int {
	for i, a := range attrs {
		if a.Key == key {
			return i
		}
	}
	return -1
}

func writeTag(b *strings.Builder, tok xhtml.Token, tt xhtml.TokenType) {
	b.WriteByte('<')
	b.WriteString(tok.Data)
	for _, a := range tok.Attr {
		fmt.Fprintf(b, ` %s="%s"`, a.Key, html.EscapeString(a.Val))
	}
	if tt == xhtml.SelfClosingTagToken {
		b.WriteString("/>")
	} else {
		b.WriteByte('>')
	}
}

// skipElement consumes tokens up to and including the end tag that closes the
// element we just replaced. Only tags matching the element's own name count
// toward nesting depth, so children using HTML's omitted end tags (<li>, <p>,
// <td>) do not throw the scan off balance.
func skipElement(z *xhtml.Tokenizer, name string) error {
	depth := 1
	for depth > 0 {
		switch z.Next() {
		case xhtml.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return fmt.Errorf("tokenize document: %w", err)
			}
			return fmt.Errorf("unclosed element <%s>", name)
		case xhtml.StartTagToken:
			if tag, _ := z.TagName(); string(tag) == name {
				depth++
			}
		case xhtml.EndTagToken:
			if tag, _ := z.TagName(); string(tag) == name {
				depth--
			}
		}
	}
	return nil
}
