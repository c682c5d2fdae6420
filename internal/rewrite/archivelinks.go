package rewrite

import (
	"strings"

	"github.com/gwern/ssgen/internal/ast"
)

// archiveHrefPair is the attribute key the local snapshot path is recorded
// under; the renderer uses it to offer a "view locally archived copy" link
// alongside the original external href.
const archiveHrefPair = "data-url-archive"

const linkArchivedClass = "link-archived"

// ArchiveLocalLinks annotates every external link with the local snapshot
// path resolved by Context.ArchiveFetch. A link whose snapshot could not
// be produced (permanent archive failure)
// is left exactly as it was; archiving is best-effort, not a build
// requirement.
func ArchiveLocalLinks(doc *Document, ctx *Context) (*Document, error) {
	if ctx.ArchiveFetch == nil {
		return doc, nil
	}
	ast.WalkLinks(doc.Blocks, func(l *ast.Link) {
		if !isExternalLink(l.Target) {
			return
		}
		localPath, err := ctx.ArchiveFetch(l.Target)
		if err != nil || localPath == "" {
			return
		}
		l.Attr = l.Attr.SetPair(archiveHrefPair, localPath)
		l.Attr = l.Attr.AddClass(linkArchivedClass)
	})
	return doc, nil
}

func isExternalLink(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}
