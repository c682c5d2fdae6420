package rewrite

import (
	"fmt"
	"strings"

	"github.com/gwern/ssgen/internal/ast"
)

// minFootnoteTextLen is the malformed-anchor detection threshold: a
// footnote whose anchor text is short and contains no spaces is almost
// always a mis-typed citation key rather than real footnote prose, and
// the build should fail loudly rather than render a broken note.
const minFootnoteTextLen = 4

// CheckFootnotes detects malformed footnote anchors and fails the build
// with a diagnostic. A footnote anchor here is any Link whose Attr
// carries class "footnote-ref".
func CheckFootnotes(doc *Document, ctx *Context) (*Document, error) {
	var offending []string
	ast.WalkLinks(doc.Blocks, func(l *ast.Link) {
		if !l.Attr.HasClass("footnote-ref") {
			return
		}
		text := ast.CollectText(l.Inlines)
		if len(text) < minFootnoteTextLen && !strings.ContainsRune(text, ' ') && !isDigits(text) {
			offending = append(offending, text)
		}
	})
	if len(offending) > 0 {
		return doc, fmt.Errorf("malformed footnote anchor(s) in %s: %q", doc.Path, offending)
	}
	return doc, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
