package scraper

import "regexp"

// separatorPattern matches the author-list joiners normalized to a plain
// comma: " and ", ", & ", ", and ".
var separatorPattern = regexp.MustCompile(` and |, & |, and `)

// spacedInitialPattern finds "A.Smith" or "A.B." runs (period directly
// followed by a letter, no space) and inserts the missing space.
var spacedInitialPattern = regexp.MustCompile(`([A-Z])\.([A-Za-z])`)

// bareInitialPattern finds a lone capital letter followed by whitespace
// (no period yet), e.g. the "A" in "A Smith".
var bareInitialPattern = regexp.MustCompile(`\b([A-Z])\b(\s)`)

// NormalizeAuthor standardizes spaced initials, unifies separators to
// ", ", and inserts a missing period after a lone initial.
func NormalizeAuthor(author string) string {
	s := separatorPattern.ReplaceAllString(author, ", ")
	s = spacedInitialPattern.ReplaceAllString(s, "$1. $2")
	s = bareInitialPattern.ReplaceAllString(s, "$1.$2")
	return s
}
