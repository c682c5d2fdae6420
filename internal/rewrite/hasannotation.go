package rewrite

import (
	"strings"

	"github.com/gwern/ssgen/internal/ast"
	"github.com/gwern/ssgen/internal/identifier"
)

// docMetadataClass marks a link as having a popup annotation available.
const docMetadataClass = "docMetadata"

// noAnnotationClass is the author opt-out: a link already carrying this
// class is left untouched by MarkHasAnnotation.
const noAnnotationClass = "link-annotated-not"

// MarkHasAnnotation gives a link whose target has a non-empty annotation
// (or any Wikipedia link, unconditionally) the docMetadata class and a
// freshly generated id, unless the author opted out. Annotations whose
// abstract is shorter than
// Context.MinAbstractLenForMark are left unmarked: the existing tooltip
// already says everything the popup would.
func MarkHasAnnotation(doc *Document, ctx *Context) (*Document, error) {
	ast.WalkLinks(doc.Blocks, func(l *ast.Link) {
		if l.Attr.HasClass(noAnnotationClass) {
			return
		}

		item, ok := ctx.Metadata.Lookup(l.Target)
		wiki := isWikipediaURL(l.Target)
		if !ok && !wiki {
			return
		}
		if !wiki && len(item.Abstract) < ctx.MinAbstractLenForMark {
			return
		}

		l.Attr = l.Attr.AddClass(docMetadataClass)
		if l.Attr.ID == "" {
			l.Attr.ID = identifier.Generate(l.Target, item.Author, item.Date)
		}
	})
	return doc, nil
}

func isWikipediaURL(target string) bool {
	return strings.Contains(target, "en.wikipedia.org/wiki/")
}
