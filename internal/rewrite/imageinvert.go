package rewrite

import (
	"strings"

	"github.com/gwern/ssgen/internal/ast"
)

const invertibleAutoClass = "invertible-auto"

var invertibleExtensions = []string{".png", ".jpg", ".jpeg"}

// MarkInvertibleImages checks every Image, and every Link pointing
// directly at a .png/.jpg/.jpeg file, via Context.IsInvertible (mean
// HSL lightness below threshold) and tags invertible-auto on a match. The
// mean-color computation itself is never performed here: this pass only
// classifies, keeping the rewrite phase free of file or network I/O.
func MarkInvertibleImages(doc *Document, ctx *Context) (*Document, error) {
	if ctx.IsInvertible == nil {
		return doc, nil
	}

	ast.WalkImages(doc.Blocks, func(img *ast.Image) {
		if invertible, err := ctx.IsInvertible(img.Target); err == nil && invertible {
			img.Attr = img.Attr.AddClass(invertibleAutoClass)
		}
	})

	ast.WalkLinks(doc.Blocks, func(l *ast.Link) {
		if !hasImageExtension(l.Target) {
			return
		}
		if invertible, err := ctx.IsInvertible(l.Target); err == nil && invertible {
			l.Attr = l.Attr.AddClass(invertibleAutoClass)
		}
	})

	return doc, nil
}

func hasImageExtension(target string) bool {
	lower := strings.ToLower(target)
	for _, ext := range invertibleExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
