package rewrite

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gwern/ssgen/internal/ast"
)

const (
	zeroWidthSpace = "​"
	hairSpace      = " "
)

// equalsPattern implements the equals line-breaker: a "=" or "≠" directly
// followed by an alphanumeric gets spaces inserted around it, e.g. "n=10"
// -> "n = 10" (whitespace already before the sign becomes one space).
// Code spans (ast.Code) are never walked by this pass, so "==" inside
// code is unaffected.
var equalsPattern = regexp.MustCompile(`\s*([=≠])([0-9A-Za-z])`)

// hrCycleLen is the horizontal-rule cycler's modulus.
const hrCycleLen = 3

// iconRule matches a domain substring to the sprite-icon class it selects.
// Order matters: first match wins.
type iconRule struct {
	domain string
	class  string
}

var iconRules = []iconRule{
	{"github.com", "link-icon-github"},
	{"en.wikipedia.org", "link-icon-wikipedia"},
	{"arxiv.org", "link-icon-arxiv"},
	{"youtube.com", "link-icon-video"},
	{"twitter.com", "link-icon-twitter"},
	{"x.com", "link-icon-twitter"},
}

// ApplyTypography runs five sub-passes in order: slash line-breaker,
// equals line-breaker, link-live classifier, link-icon classifier,
// horizontal-rule cycler.
func ApplyTypography(doc *Document, ctx *Context) (*Document, error) {
	breakSlashes(doc.Blocks, false)
	doc.Blocks = rewriteBlocksInlines(doc.Blocks, breakEquals)
	ast.WalkLinks(doc.Blocks, func(l *ast.Link) {
		classifyLinkLive(l, ctx.LiveDomains)
		classifyLinkIcon(l)
	})

	cycle := 0
	doc.Blocks = cycleHorizontalRules(doc.Blocks, &cycle)
	return doc, nil
}

// breakSlashes walks every inline run, inserting a zero-width space after
// each "/" in plain text, or hair-space padding around it when insideLink
// is true (a hair space avoids an ugly underline gap inside link text).
func breakSlashes(blocks []ast.Block, insideLink bool) {
	for _, b := range blocks {
		switch v := b.(type) {
		case *ast.Paragraph:
			breakSlashesInlines(v.Inlines)
		case *ast.Plain:
			breakSlashesInlines(v.Inlines)
		case *ast.Header:
			breakSlashesInlines(v.Inlines)
		case *ast.Div:
			breakSlashes(v.Blocks, insideLink)
		case *ast.BlockQuote:
			breakSlashes(v.Blocks, insideLink)
		case *ast.Figure:
			breakSlashesInlines(v.Caption)
		}
	}
}

func breakSlashesInlines(inlines []ast.Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case *ast.Str:
			v.Text = insertSlashPadding(v.Text, zeroWidthSpace)
		case *ast.Emph:
			breakSlashesInlines(v.Inlines)
		case *ast.Strong:
			breakSlashesInlines(v.Inlines)
		case *ast.Link:
			breakSlashesLinkText(v.Inlines)
		}
	}
}

func breakSlashesLinkText(inlines []ast.Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case *ast.Str:
			v.Text = insertSlashPadding(v.Text, hairSpace)
		case *ast.Emph:
			breakSlashesLinkText(v.Inlines)
		case *ast.Strong:
			breakSlashesLinkText(v.Inlines)
		}
	}
}

// insertSlashPadding inserts pad after every "/" not already followed by
// whitespace or the same padding character, leaving the slash itself and
// all other characters untouched.
func insertSlashPadding(text, pad string) string {
	if !strings.Contains(text, "/") {
		return text
	}
	var out strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		out.WriteRune(r)
		if r != '/' {
			continue
		}
		if i+1 < len(runes) {
			next := runes[i+1]
			if next == ' ' || string(next) == pad {
				continue
			}
		}
		out.WriteString(pad)
	}
	return out.String()
}

func breakEquals(inlines []ast.Inline) []ast.Inline {
	for _, in := range inlines {
		if str, ok := in.(*ast.Str); ok {
			str.Text = equalsPattern.ReplaceAllString(str.Text, " $1 $2")
		}
	}
	return inlines
}

const linkLiveClass = "link-live"

func classifyLinkLive(l *ast.Link, liveDomains map[string]bool) {
	if len(liveDomains) == 0 {
		return
	}
	host := hostOf(l.Target)
	if liveDomains[host] {
		l.Attr = l.Attr.AddClass(linkLiveClass)
	}
}

func classifyLinkIcon(l *ast.Link) {
	for _, rule := range iconRules {
		if strings.Contains(l.Target, rule.domain) {
			l.Attr = l.Attr.AddClass(rule.class)
			return
		}
	}
}

func hostOf(target string) string {
	rest := target
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	} else {
		return ""
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// cycleHorizontalRules replaces every HorizontalRule, at any nesting depth,
// with a Div of class "horizontalRule-nth-<cycle%3>" wrapping it, visiting
// blocks in source order and threading cycle explicitly rather than via a
// package-level counter.
func cycleHorizontalRules(blocks []ast.Block, cycle *int) []ast.Block {
	out := make([]ast.Block, 0, len(blocks))
	for _, b := range blocks {
		switch v := b.(type) {
		case *ast.HorizontalRule:
			class := hrCycleClass(*cycle)
			*cycle = (*cycle + 1) % hrCycleLen
			out = append(out, &ast.Div{
				Attr:   ast.Attr{Classes: []string{class}},
				Blocks: []ast.Block{v},
			})
		case *ast.Div:
			v.Blocks = cycleHorizontalRules(v.Blocks, cycle)
			out = append(out, v)
		case *ast.BlockQuote:
			v.Blocks = cycleHorizontalRules(v.Blocks, cycle)
			out = append(out, v)
		default:
			out = append(out, b)
		}
	}
	return out
}

func hrCycleClass(n int) string {
	return "horizontalRule-nth-" + strconv.Itoa(n)
}
