// Package htmlclean implements the HTML cleaner: a pure function cleaning
// scraped abstract HTML via an ordered table of rules, kept as declarative
// data rather than inline logic so the rule set stays independently
// reviewable.
package htmlclean

import (
	"regexp"
	"strings"
)

// Kind distinguishes a rule's matching strategy.
type Kind string

const (
	KindLiteral Kind = "literal"
	KindRegex   Kind = "regex"
)

// Rule is one entry of the cleaner's ordered rule table: {before, after, kind}.
type Rule struct {
	Before string `yaml:"before"`
	After  string `yaml:"after"`
	Kind   Kind   `yaml:"kind"`
}

type compiledRule struct {
	re      *regexp.Regexp // nil for literal rules
	literal string
	after   string
}

var rules []compiledRule

func init() {
	table, err := loadEmbeddedRules()
	if err != nil {
		panic("htmlclean: malformed embedded rules.yaml: " + err.Error())
	}
	rules = compile(table)
}

func compile(table []Rule) []compiledRule {
	out := make([]compiledRule, 0, len(table))
	for _, r := range table {
		if r.Kind == KindRegex {
			out = append(out, compiledRule{re: regexp.MustCompile(r.Before), after: r.After})
		} else {
			out = append(out, compiledRule{literal: r.Before, after: r.After})
		}
	}
	return out
}

// Clean applies the rule table to abstract HTML in table order (regex and
// literal rules interleaved as rules.yaml lists them) and trims the result. Every rule is documented
// as idempotent under repeated application.
func Clean(html string) string {
	s := html
	for _, r := range rules {
		if r.re != nil {
			s = r.re.ReplaceAllString(s, r.after)
		} else {
			s = strings.ReplaceAll(s, r.literal, r.after)
		}
	}
	return strings.TrimSpace(s)
}
