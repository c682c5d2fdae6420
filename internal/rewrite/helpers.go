package rewrite

import "github.com/gwern/ssgen/internal/ast"

// rewriteBlocksInlines applies fn to every inline-bearing block's Inlines
// slice, recursing into Div and BlockQuote children, and returns the
// (possibly mutated) block list. Shared by every pass that only needs to
// transform inline runs (auto-linker, inflation adjuster, typography's
// equals line-breaker).
func rewriteBlocksInlines(blocks []ast.Block, fn func([]ast.Inline) []ast.Inline) []ast.Block {
	for _, b := range blocks {
		switch v := b.(type) {
		case *ast.Paragraph:
			v.Inlines = fn(v.Inlines)
		case *ast.Plain:
			v.Inlines = fn(v.Inlines)
		case *ast.Header:
			v.Inlines = fn(v.Inlines)
		case *ast.Div:
			v.Blocks = rewriteBlocksInlines(v.Blocks, fn)
		case *ast.BlockQuote:
			v.Blocks = rewriteBlocksInlines(v.Blocks, fn)
		case *ast.Figure:
			v.Caption = fn(v.Caption)
		}
	}
	return blocks
}
