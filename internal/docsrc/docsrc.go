// Package docsrc is the source parser: it maps the site's lightly-marked-
// up HTML documents onto internal/ast's closed node set and serializes the
// decorated tree back to HTML once the rewrite pipeline has finished.
// Parsing uses golang.org/x/net/html, the same library
// internal/scraper/biorxiv.go uses for scraped pages, generalized here
// from <meta>-tag extraction to a full block/inline tree walk.
//
// This package does no rewriting itself: it only translates between two
// representations of the same document.
package docsrc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gwern/ssgen/internal/ast"
)

// Parse reads an HTML document body (the content inside <body>, or a bare
// fragment) and returns its typed AST, tagged with path for later passes
// that resolve relative links against the document's own location.
func Parse(source, path string) (*ast.Document, error) {
	nodes, err := html.ParseFragment(strings.NewReader(source), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	doc := &ast.Document{Path: path}
	for _, n := range nodes {
		if b := blockFromNode(n); b != nil {
			doc.Blocks = append(doc.Blocks, b)
		}
	}
	return doc, nil
}

// blockFromNode converts one top-level html.Node into an ast.Block, or nil
// for nodes carrying no block content (e.g. stray whitespace text nodes).
func blockFromNode(n *html.Node) ast.Block {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return &ast.Plain{Inlines: []ast.Inline{&ast.Str{Text: n.Data}}}
	case html.CommentNode, html.DoctypeNode:
		return nil
	case html.ElementNode:
		return blockFromElement(n)
	default:
		return nil
	}
}

func blockFromElement(n *html.Node) ast.Block {
	switch n.DataAtom {
	case atom.P:
		return &ast.Paragraph{Inlines: inlinesFromChildren(n)}
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return &ast.Header{
			Level:   headerLevel(n.DataAtom),
			Attr:    attrFromNode(n),
			Inlines: inlinesFromChildren(n),
		}
	case atom.Hr:
		return &ast.HorizontalRule{}
	case atom.Blockquote:
		return &ast.BlockQuote{Blocks: blocksFromChildren(n)}
	case atom.Figure:
		return figureFromNode(n)
	case atom.Div, atom.Section, atom.Article:
		return &ast.Div{Attr: attrFromNode(n), Blocks: blocksFromChildren(n)}
	default:
		// Anything else at block position (e.g. <table>, <ul>) is passed
		// through verbatim rather than decomposed; the rewrite passes never
		// need to look inside it.
		var b strings.Builder
		if err := html.Render(&b, n); err == nil {
			return &ast.RawBlockHTML{HTML: b.String()}
		}
		return nil
	}
}

func headerLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	default:
		return 6
	}
}

func figureFromNode(n *html.Node) ast.Block {
	fig := &ast.Figure{}
	var caption []ast.Inline
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Img {
			fig.Image = imageFromNode(c)
		} else if c.Type == html.ElementNode && c.DataAtom == atom.Figcaption {
			caption = append(caption, inlinesFromChildren(c)...)
		}
	}
	fig.Caption = caption
	return fig
}

func blocksFromChildren(n *html.Node) []ast.Block {
	var out []ast.Block
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := blockFromNode(c); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func inlinesFromChildren(n *html.Node) []ast.Inline {
	var out []ast.Inline
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, inlinesFromNode(c)...)
	}
	return out
}

// inlinesFromNode returns zero or more ast.Inline for one html.Node; a
// single node occasionally needs more than one, so it returns a slice
// rather than a single value.
func inlinesFromNode(n *html.Node) []ast.Inline {
	switch n.Type {
	case html.TextNode:
		return splitTextRun(n.Data)
	case html.CommentNode:
		return nil
	case html.ElementNode:
		return inlinesFromElement(n)
	default:
		return nil
	}
}

func inlinesFromElement(n *html.Node) []ast.Inline {
	switch n.DataAtom {
	case atom.A:
		return []ast.Inline{linkFromNode(n)}
	case atom.Img:
		return []ast.Inline{imageFromNode(n)}
	case atom.Em, atom.I:
		return []ast.Inline{&ast.Emph{Inlines: inlinesFromChildren(n)}}
	case atom.Strong, atom.B:
		return []ast.Inline{&ast.Strong{Inlines: inlinesFromChildren(n)}}
	case atom.Code, atom.Tt:
		return []ast.Inline{&ast.Code{Text: collectText(n)}}
	case atom.Br:
		return []ast.Inline{&ast.SoftBreak{}}
	default:
		var b strings.Builder
		if err := html.Render(&b, n); err == nil {
			return []ast.Inline{&ast.RawInlineHTML{HTML: b.String()}}
		}
		return nil
	}
}

// splitTextRun turns a run of text into alternating Str/Space inlines so
// the slash line-breaker and typography passes can see word boundaries;
// they operate between words, not inside a single Str token.
func splitTextRun(text string) []ast.Inline {
	var out []ast.Inline
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, &ast.Str{Text: cur.String()})
			cur.Reset()
		}
	}
	for _, r := range text {
		if r == ' ' {
			flush()
			out = append(out, &ast.Space{})
		} else if r == '\n' {
			flush()
			out = append(out, &ast.SoftBreak{})
		} else {
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

func linkFromNode(n *html.Node) *ast.Link {
	l := &ast.Link{Attr: attrFromNode(n), Inlines: inlinesFromChildren(n)}
	for _, a := range n.Attr {
		switch a.Key {
		case "href":
			l.Target = a.Val
		case "title":
			l.Title = a.Val
		}
	}
	return l
}

func imageFromNode(n *html.Node) *ast.Image {
	img := &ast.Image{Attr: attrFromNode(n)}
	for _, a := range n.Attr {
		switch a.Key {
		case "src":
			img.Target = a.Val
		case "alt":
			img.Alt = []ast.Inline{&ast.Str{Text: a.Val}}
		}
	}
	return img
}

// attrFromNode extracts the (id, classes, key-value pairs) triple attached
// to linkable nodes, skipping id/class themselves from Pairs since they
// have dedicated fields.
func attrFromNode(n *html.Node) ast.Attr {
	attr := ast.Attr{}
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			attr.ID = a.Val
		case "class":
			if a.Val != "" {
				attr.Classes = strings.Fields(a.Val)
			}
		default:
			attr = attr.SetPair(a.Key, a.Val)
		}
	}
	return attr
}

func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
