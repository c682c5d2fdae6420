package rewrite

import (
	"fmt"

	"github.com/gwern/ssgen/internal/ast"
)

// CreateAnnotations ensures the metadata store has an entry for every
// distinct link target in the document, scraping via the injected
// Context.EnsureAnnotation on a miss. The walk itself performs no I/O; it
// only decides which targets are new and delegates to the driver-supplied
// hook, keeping this pass's own logic pure and testable without a
// network.
func CreateAnnotations(doc *Document, ctx *Context) (*Document, error) {
	if ctx.EnsureAnnotation == nil {
		return doc, nil
	}

	seen := map[string]bool{}
	var targets []string
	ast.WalkLinks(doc.Blocks, func(l *ast.Link) {
		if l.Target == "" || seen[l.Target] {
			return
		}
		seen[l.Target] = true
		if _, ok := ctx.Metadata.Lookup(l.Target); ok {
			return
		}
		targets = append(targets, l.Target)
	})

	for _, target := range targets {
		if err := ctx.EnsureAnnotation(target); err != nil {
			return doc, fmt.Errorf("annotating %s: %w", target, err)
		}
	}
	return doc, nil
}
