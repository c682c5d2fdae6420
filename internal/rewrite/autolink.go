package rewrite

import (
	"github.com/gwern/ssgen/internal/ast"
)

// AutoLink scans text nodes for known phrases (the exact phrases listed
// in Context.KnownPhrases) and
// turns the first occurrence in each Str into a Link. Must run first so
// later passes (annotation marking, typography) see the links it
// introduces.
func AutoLink(doc *Document, ctx *Context) (*Document, error) {
	if len(ctx.KnownPhrases) == 0 {
		return doc, nil
	}
	doc.Blocks = rewriteBlocksInlines(doc.Blocks, func(inlines []ast.Inline) []ast.Inline {
		return autoLinkInlines(inlines, ctx.KnownPhrases)
	})
	return doc, nil
}

// autoLinkInlines replaces a Str node with [Str(prefix), Link, Str(suffix)]
// for the earliest phrase match inside it (the longest phrase when several
// start at the same position). One match per Str is linked per
// application. A Link's own text is never revisited, so repeated
// application never nests links; a later occurrence left in the suffix Str
// is linked by a further application.
func autoLinkInlines(inlines []ast.Inline, phrases map[string]string) []ast.Inline {
	out := make([]ast.Inline, 0, len(inlines))
	for _, in := range inlines {
		str, ok := in.(*ast.Str)
		if !ok {
			out = append(out, in)
			continue
		}
		if target, rest, matched := firstPhraseMatch(str.Text, phrases); matched {
			before, phrase, after := rest[0], rest[1], rest[2]
			if before != "" {
				out = append(out, &ast.Str{Text: before})
			}
			out = append(out, &ast.Link{Target: target, Inlines: []ast.Inline{&ast.Str{Text: phrase}}})
			if after != "" {
				out = append(out, &ast.Str{Text: after})
			}
			continue
		}
		out = append(out, in)
	}
	return out
}

// firstPhraseMatch finds the earliest, longest phrase match in text.
func firstPhraseMatch(text string, phrases map[string]string) (target string, parts [3]string, matched bool) {
	bestIdx := -1
	var bestPhrase, bestTarget string
	for phrase, url := range phrases {
		idx := indexOf(text, phrase)
		if idx < 0 {
			continue
		}
		if bestIdx == -1 || idx < bestIdx || (idx == bestIdx && len(phrase) > len(bestPhrase)) {
			bestIdx = idx
			bestPhrase = phrase
			bestTarget = url
		}
	}
	if bestIdx == -1 {
		return "", [3]string{}, false
	}
	return bestTarget, [3]string{text[:bestIdx], bestPhrase, text[bestIdx+len(bestPhrase):]}, true
}

func indexOf(haystack, needle string) int {
	n, m := len(haystack), len(needle)
	if m == 0 || m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if haystack[i:i+m] == needle {
			return i
		}
	}
	return -1
}
