package rewrite

import (
	"fmt"
	"strings"

	"github.com/gwern/ssgen/internal/ast"
)

// interwikiPrefix is the shorthand target syntax this pass resolves: a
// Link whose Target is exactly "!<prefix>", e.g. "!W" for Wikipedia.
const interwikiPrefix = "!"

// ResolveInterwiki turns `[text](!W)`-style shorthand into a concrete URL
// by substituting the link's visible text into the matching
// Context.Interwiki template.
func ResolveInterwiki(doc *Document, ctx *Context) (*Document, error) {
	if len(ctx.Interwiki) == 0 {
		return doc, nil
	}
	ast.WalkLinks(doc.Blocks, func(l *ast.Link) {
		if !strings.HasPrefix(l.Target, interwikiPrefix) {
			return
		}
		prefix := strings.TrimPrefix(l.Target, interwikiPrefix)
		tmpl, ok := ctx.Interwiki[prefix]
		if !ok {
			return
		}
		title := ast.CollectText(l.Inlines)
		l.Target = fmt.Sprintf(tmpl, title)
	})
	return doc, nil
}
