package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gwern/ssgen/internal/ast"
)

// forbiddenIDChars are never allowed in an emitted header id: presence of
// any of these is a build error, not something silently stripped.
const forbiddenIDChars = ".#:"

var idSlugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// SelfLinkHeaders gives every header a non-empty, forbidden-character-free
// id, and replaces its visible children with a single self-link to
// "#<id>" whose text is a title-cased rendering of the original heading
// text.
func SelfLinkHeaders(doc *Document, ctx *Context) (*Document, error) {
	var err error
	ast.WalkHeaders(doc.Blocks, func(h *ast.Header) {
		if err != nil {
			return
		}
		plainText := ast.CollectText(h.Inlines)

		if h.Attr.ID != "" {
			if strings.ContainsAny(h.Attr.ID, forbiddenIDChars) {
				err = fmt.Errorf("header id %q contains a forbidden character (one of %q)", h.Attr.ID, forbiddenIDChars)
				return
			}
		} else {
			h.Attr.ID = slugifyHeading(plainText)
			if h.Attr.ID == "" {
				err = fmt.Errorf("header %q produced an empty id", plainText)
				return
			}
		}

		h.Inlines = []ast.Inline{&ast.Link{
			Target:  "#" + h.Attr.ID,
			Title:   fmt.Sprintf("Link to section: § '%s'", plainText),
			Inlines: []ast.Inline{&ast.Str{Text: titleCase(plainText)}},
		}}
	})
	return doc, err
}

// slugifyHeading derives a header id from its plain text: lowercase,
// non-alphanumeric runs collapsed to a single hyphen, trimmed. The result
// can never contain a forbidden character, since only [a-z0-9-] survive.
func slugifyHeading(text string) string {
	slug := idSlugNonAlnum.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}

// titleCase capitalizes the first letter of every space-separated word,
// lowercasing the rest, for the self-link's visible text.
func titleCase(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}
