package rewrite

import "github.com/gwern/ssgen/internal/ast"

// NormalizeLooseBlocks promotes any top-level Plain block to a Paragraph.
// This is the final pass, so every block kind a renderer sees afterward
// is already in its fully normalized form.
func NormalizeLooseBlocks(doc *Document, ctx *Context) (*Document, error) {
	for i, b := range doc.Blocks {
		if plain, ok := b.(*ast.Plain); ok {
			doc.Blocks[i] = &ast.Paragraph{Inlines: plain.Inlines}
		}
	}
	return doc, nil
}
