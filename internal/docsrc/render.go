package docsrc

import (
	"fmt"
	"html"
	"strings"

	"github.com/gwern/ssgen/internal/ast"
)

// Render serializes a fully-rewritten document back to HTML, once every
// rewrite pass has run. Escaping of text content uses html.EscapeString
// directly rather than round-tripping through golang.org/x/net/html's node
// builder, since the AST already carries well-formed attribute values;
// Raw*HTML nodes are emitted verbatim, matching how they were captured
// unmodified by Parse.
func Render(doc *ast.Document) (string, error) {
	var b strings.Builder
	for _, blk := range doc.Blocks {
		if err := renderBlock(&b, blk); err != nil {
			return "", fmt.Errorf("rendering %s: %w", doc.Path, err)
		}
	}
	return b.String(), nil
}

func renderBlock(b *strings.Builder, blk ast.Block) error {
	switch n := blk.(type) {
	case *ast.Paragraph:
		b.WriteString("<p>")
		renderInlines(b, n.Inlines)
		b.WriteString("</p>\n")
	case *ast.Plain:
		renderInlines(b, n.Inlines)
		b.WriteString("\n")
	case *ast.Header:
		tag := fmt.Sprintf("h%d", n.Level)
		b.WriteString("<" + tag + renderAttr(n.Attr) + ">")
		renderInlines(b, n.Inlines)
		b.WriteString("</" + tag + ">\n")
	case *ast.HorizontalRule:
		b.WriteString("<hr />\n")
	case *ast.BlockQuote:
		b.WriteString("<blockquote>\n")
		for _, inner := range n.Blocks {
			if err := renderBlock(b, inner); err != nil {
				return err
			}
		}
		b.WriteString("</blockquote>\n")
	case *ast.Div:
		b.WriteString("<div" + renderAttr(n.Attr) + ">\n")
		for _, inner := range n.Blocks {
			if err := renderBlock(b, inner); err != nil {
				return err
			}
		}
		b.WriteString("</div>\n")
	case *ast.Figure:
		b.WriteString("<figure>\n")
		if n.Image != nil {
			renderInlines(b, []ast.Inline{n.Image})
			b.WriteString("\n")
		}
		if len(n.Caption) > 0 {
			b.WriteString("<figcaption>")
			renderInlines(b, n.Caption)
			b.WriteString("</figcaption>\n")
		}
		b.WriteString("</figure>\n")
	case *ast.RawBlockHTML:
		b.WriteString(n.HTML)
		b.WriteString("\n")
	default:
		return fmt.Errorf("unknown block type %T", blk)
	}
	return nil
}

func renderInlines(b *strings.Builder, inlines []ast.Inline) {
	for _, in := range inlines {
		renderInline(b, in)
	}
}

func renderInline(b *strings.Builder, in ast.Inline) {
	switch n := in.(type) {
	case *ast.Str:
		b.WriteString(html.EscapeString(n.Text))
	case *ast.Space:
		b.WriteString(" ")
	case *ast.SoftBreak:
		b.WriteString("\n")
	case *ast.Emph:
		b.WriteString("<em>")
		renderInlines(b, n.Inlines)
		b.WriteString("</em>")
	case *ast.Strong:
		b.WriteString("<strong>")
		renderInlines(b, n.Inlines)
		b.WriteString("</strong>")
	case *ast.Link:
		attr := n.Attr
		b.WriteString("<a" + renderAttr(attr) + ` href="` + html.EscapeString(n.Target) + `"`)
		if n.Title != "" {
			b.WriteString(` title="` + html.EscapeString(n.Title) + `"`)
		}
		b.WriteString(">")
		renderInlines(b, n.Inlines)
		b.WriteString("</a>")
	case *ast.Image:
		b.WriteString("<img" + renderAttr(n.Attr) + ` src="` + html.EscapeString(n.Target) + `"`)
		if len(n.Alt) > 0 {
			b.WriteString(` alt="` + html.EscapeString(collectAltText(n.Alt)) + `"`)
		}
		b.WriteString(" />")
	case *ast.RawInlineHTML:
		b.WriteString(n.HTML)
	case *ast.Code:
		b.WriteString("<code>" + html.EscapeString(n.Text) + "</code>")
	}
}

func collectAltText(inlines []ast.Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		if s, ok := in.(*ast.Str); ok {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// renderAttr renders the (id, classes, pairs) triple as HTML attribute
// text, with a leading space when non-empty so callers can splice it
// directly after a tag name.
func renderAttr(a ast.Attr) string {
	var b strings.Builder
	if a.ID != "" {
		b.WriteString(` id="` + html.EscapeString(a.ID) + `"`)
	}
	if len(a.Classes) > 0 {
		b.WriteString(` class="` + html.EscapeString(strings.Join(a.Classes, " ")) + `"`)
	}
	for _, k := range sortedKeys(a.Pairs) {
		b.WriteString(" " + k + `="` + html.EscapeString(a.Pairs[k]) + `"`)
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
