package rewrite

import (
	"path"
	"strings"

	"github.com/gwern/ssgen/internal/ast"
)

const linkLocalClass = "link-local"

var excludedLocalPrefixes = []string{"/static/", "/images/"}

// ClassifyLocalLinks tags link-local, for styling, any link whose target
// starts with "/", whose path has no file extension, and is not under
// /static/ or /images/.
func ClassifyLocalLinks(doc *Document, ctx *Context) (*Document, error) {
	ast.WalkLinks(doc.Blocks, func(l *ast.Link) {
		if isLocalPageLink(l.Target) {
			l.Attr = l.Attr.AddClass(linkLocalClass)
		}
	})
	return doc, nil
}

func isLocalPageLink(target string) bool {
	if !strings.HasPrefix(target, "/") {
		return false
	}
	for _, prefix := range excludedLocalPrefixes {
		if strings.HasPrefix(target, prefix) {
			return false
		}
	}
	clean := target
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	return path.Ext(clean) == ""
}
