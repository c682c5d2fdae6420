package docsrc

import (
	"strings"
	"testing"

	"github.com/gwern/ssgen/internal/ast"
)

func TestParseParagraphWithLink(t *testing.T) {
	doc, err := Parse(`<p>See <a href="https://arxiv.org/abs/1706.03762">this paper</a> for details.</p>`, "/doc/test")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	p, ok := doc.Blocks[0].(*ast.Paragraph)
	if !ok {
		t.Fatalf("expected *ast.Paragraph, got %T", doc.Blocks[0])
	}

	var link *ast.Link
	for _, in := range p.Inlines {
		if l, ok := in.(*ast.Link); ok {
			link = l
		}
	}
	if link == nil {
		t.Fatal("expected a link in the paragraph")
	}
	if link.Target != "https://arxiv.org/abs/1706.03762" {
		t.Errorf("unexpected link target: %q", link.Target)
	}
}

func TestParseHeaderPreservesID(t *testing.T) {
	doc, err := Parse(`<h2 id="sec-1" class="intro">Introduction</h2>`, "/doc/test")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	h, ok := doc.Blocks[0].(*ast.Header)
	if !ok {
		t.Fatalf("expected *ast.Header, got %T", doc.Blocks[0])
	}
	if h.Level != 2 {
		t.Errorf("expected level 2, got %d", h.Level)
	}
	if h.Attr.ID != "sec-1" {
		t.Errorf("expected id sec-1, got %q", h.Attr.ID)
	}
	if !h.Attr.HasClass("intro") {
		t.Errorf("expected class intro, got %v", h.Attr.Classes)
	}
}

func TestRenderRoundTripsLink(t *testing.T) {
	doc := &ast.Document{
		Path: "/doc/test",
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{
				&ast.Str{Text: "See"},
				&ast.Space{},
				&ast.Link{
					Target:  "/doc/other",
					Attr:    ast.Attr{Classes: []string{"docMetadata"}, ID: "smith-2020"},
					Inlines: []ast.Inline{&ast.Str{Text: "this"}},
				},
			}},
		},
	}

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `href="/doc/other"`) {
		t.Errorf("expected href in output, got %q", out)
	}
	if !strings.Contains(out, `class="docMetadata"`) {
		t.Errorf("expected class in output, got %q", out)
	}
	if !strings.Contains(out, `id="smith-2020"`) {
		t.Errorf("expected id in output, got %q", out)
	}
}

func TestParseRenderRoundTrip(t *testing.T) {
	src := `<p>Hello <em>world</em>, see <a href="/x">link</a>.</p>`
	doc, err := Parse(src, "/doc/test")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "<em>world</em>") {
		t.Errorf("expected emphasis preserved, got %q", out)
	}
	if !strings.Contains(out, `href="/x"`) {
		t.Errorf("expected link preserved, got %q", out)
	}
}
