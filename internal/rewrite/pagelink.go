package rewrite

import (
	"strings"

	"github.com/gwern/ssgen/internal/ast"
)

const (
	hasBacklinksClass = "link-has-backlinks"
	hasSimilarClass   = "link-has-similar"
	tagsPair          = "data-tags"
)

// WalkPageLinks propagates page-level metadata (backlinks available,
// similar-links available, tag list) onto any link whose target is
// itself a known local page.
func WalkPageLinks(doc *Document, ctx *Context) (*Document, error) {
	ast.WalkLinks(doc.Blocks, func(l *ast.Link) {
		if ctx.PageHasBacklinks[l.Target] {
			l.Attr = l.Attr.AddClass(hasBacklinksClass)
		}
		if ctx.PageHasSimilar[l.Target] {
			l.Attr = l.Attr.AddClass(hasSimilarClass)
		}
		if tags := ctx.PageTags[l.Target]; len(tags) > 0 {
			l.Attr = l.Attr.SetPair(tagsPair, strings.Join(tags, ","))
		}
	})
	return doc, nil
}
