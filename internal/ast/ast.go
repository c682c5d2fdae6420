// Package ast defines the typed block/inline document tree that every
// rewrite pass in internal/rewrite operates on.
//
// The tree is deliberately small and closed: a fixed set of block and
// inline node kinds, each carrying an Attr triple (ID, Classes, Pairs) on
// the nodes that can be linked or targeted.
package ast

// Attr is the (id, classes, key-value pairs) triple attached to linkable
// nodes: headers, links, and images.
type Attr struct {
	ID      string
	Classes []string
	Pairs   map[string]string
}

// HasClass reports whether a is tagged with class.
func (a Attr) HasClass(class string) bool {
	for _, c := range a.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends class to a if not already present, returning the result.
func (a Attr) AddClass(class string) Attr {
	if a.HasClass(class) {
		return a
	}
	a.Classes = append(a.Classes, class)
	return a
}

// SetPair sets a key-value pair, creating the map if necessary.
func (a Attr) SetPair(key, value string) Attr {
	if a.Pairs == nil {
		a.Pairs = map[string]string{}
	}
	a.Pairs[key] = value
	return a
}

// Block is any top-level or nested block-level node.
type Block interface {
	blockNode()
}

// Inline is any inline node appearing inside a paragraph, header, or link text.
type Inline interface {
	inlineNode()
}

// Document is the root of the AST: an ordered sequence of blocks plus the
// Path this document was parsed from (used by rewrite passes that need to
// resolve relative links against the document's own location).
type Document struct {
	Path   string
	Blocks []Block
}

// --- Block kinds ---

// Paragraph is a block containing a run of inline content.
type Paragraph struct {
	Inlines []Inline
}

func (*Paragraph) blockNode() {}

// Plain is a "loose" top-level inline run not wrapped in a paragraph,
// promoted to Paragraph by the final normalization pass.
type Plain struct {
	Inlines []Inline
}

func (*Plain) blockNode() {}

// Header is a section heading; the pipeline requires every Header to end
// with a non-empty, sanitized Attr.ID.
type Header struct {
	Level   int // 1-6
	Attr    Attr
	Inlines []Inline
}

func (*Header) blockNode() {}

// HorizontalRule is a `---`-style rule, wrapped in a numbered div by the
// HR cycler.
type HorizontalRule struct{}

func (*HorizontalRule) blockNode() {}

// BlockQuote wraps nested blocks, used by the fragment writer to present
// an abstract.
type BlockQuote struct {
	Blocks []Block
}

func (*BlockQuote) blockNode() {}

// Div is a generic wrapper block carrying an Attr, used by the HR cycler
// and the fragment writer's synthetic documents.
type Div struct {
	Attr   Attr
	Blocks []Block
}

func (*Div) blockNode() {}

// RawBlockHTML is an opaque HTML fragment passed through verbatim, used for
// scraped abstracts before they've been decomposed into the typed tree.
type RawBlockHTML struct {
	HTML string
}

func (*RawBlockHTML) blockNode() {}

// Figure wraps an Image with an optional caption, used by the Wikipedia
// scraper to prepend a thumbnail.
type Figure struct {
	Image   *Image
	Caption []Inline
}

func (*Figure) blockNode() {}

// --- Inline kinds ---

// Str is plain text content.
type Str struct {
	Text string
}

func (*Str) inlineNode() {}

// Space is an inline word-separator (as opposed to a literal " " in Str,
// so passes like the slash line-breaker can distinguish them).
type Space struct{}

func (*Space) inlineNode() {}

// SoftBreak is a line break that does not force a new paragraph.
type SoftBreak struct{}

func (*SoftBreak) inlineNode() {}

// Emph is emphasized (italic) inline content.
type Emph struct {
	Inlines []Inline
}

func (*Emph) inlineNode() {}

// Strong is strongly emphasized (bold) inline content.
type Strong struct {
	Inlines []Inline
}

func (*Strong) inlineNode() {}

// Link is the central node kind: every annotation, popup, and archive
// rewrite pass mutates a Link's Attr or Target.
type Link struct {
	Target  string // the URL or Path this link points to
	Title   string // tooltip text, e.g. "Link to section: ..."
	Attr    Attr
	Inlines []Inline
}

func (*Link) inlineNode() {}

// Image is an inline image; the image-inversion pass adds the
// invertible-auto class.
type Image struct {
	Target  string
	Alt     []Inline
	Attr    Attr
}

func (*Image) inlineNode() {}

// RawInlineHTML is an opaque inline HTML fragment passed through verbatim.
type RawInlineHTML struct {
	HTML string
}

func (*RawInlineHTML) inlineNode() {}

// Code is inline code/monospace content, preserved verbatim by the
// typography passes.
type Code struct {
	Text string
}

func (*Code) inlineNode() {}
