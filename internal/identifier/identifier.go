// Package identifier generates deterministic citation fragment IDs from
// (url, author, date). It is a pure function package: prefix stripping,
// case folding, and regexp validation over the author/date/URL inputs.
package identifier

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

// SelfAuthor is the configured site author whose own pages get the
// "gwern-<slug>" treatment instead of an author-surname ID.
const SelfAuthor = "Gwern Branwen"

// sitePrefix is stripped from self-authored URLs before slugging.
var sitePrefix = "https://gwern.net"

// trailingNumericSuffix matches a URL basename ending "-<digits>" before
// its extension, e.g. "1975-johnson-2.pdf" -> suffix "2".
var trailingNumericSuffix = regexp.MustCompile(`-([0-9]+)(\.[A-Za-z0-9]+)?$`)

// idShape is the emitted-ID validity grammar: lowercase alphanumeric and
// hyphens only.
var idShape = regexp.MustCompile(`^[a-z0-9-]*$`)

// nonSlugChars strips characters that must never survive into a generated ID.
var nonSlugChars = regexp.MustCompile(`[./#:]`)

// Generate produces a stable citation fragment ID from a URL, an author
// string, and an ISO date:
//   - empty author or date -> "" (no ID)
//   - Wikipedia URLs -> ""
//   - self-authored URLs -> "gwern-<slug>"
//   - otherwise: <surname(s)>-<year>[-N], lowercased, periods stripped
func Generate(url, author, date string) string {
	if author == "" || date == "" {
		return ""
	}
	if isWikipediaURL(url) {
		return ""
	}
	if author == SelfAuthor {
		return "gwern-" + selfSlug(url)
	}

	year := "2020"
	if len(date) >= 4 {
		year = date[:4]
	}

	authors := splitAuthors(author)
	var base string
	switch {
	case len(authors) >= 3:
		base = surname(authors[0]) + "-et-al-" + year
	case len(authors) == 2:
		base = surname(authors[0]) + "-" + surname(authors[1]) + "-" + year
	default:
		base = surname(authors[0]) + "-" + year
	}

	if suffix := urlSuffix(url); suffix != "" {
		base += "-" + suffix
	}

	return sanitize(base)
}

// isWikipediaURL reports whether url points at a Wikipedia article.
func isWikipediaURL(url string) bool {
	return strings.Contains(url, "en.wikipedia.org/wiki/")
}

// selfSlug builds the "gwern-" suffix for self-authored pages: the URL
// lowercased with ".", "--", "/", "#", and the site prefix removed.
func selfSlug(url string) string {
	s := strings.TrimPrefix(url, sitePrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "--", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "/", "")
	s = strings.ReplaceAll(s, "#", "")
	return s
}

// splitAuthors splits a comma-joined author list, stripping affiliations in
// parentheses, e.g. "Alice Johnson (MIT), Bob Quux" -> ["Alice Johnson", "Bob Quux"].
func splitAuthors(author string) []string {
	parts := strings.Split(author, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if i := strings.Index(p, "("); i >= 0 {
			p = strings.TrimSpace(p[:i])
		}
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

// surname extracts the alphabetic-only tail (last whitespace-separated
// token) of an author name, e.g. "Alice Johnson" -> "johnson".
func surname(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	last := fields[len(fields)-1]
	var b strings.Builder
	for _, r := range last {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// urlSuffix extracts a trailing numeric disambiguator from the URL
// basename. "-1" is dropped (the default, unambiguous case); any other
// digit sequence is kept.
func urlSuffix(url string) string {
	base := path.Base(url)
	m := trailingNumericSuffix.FindStringSubmatch(base)
	if m == nil {
		return ""
	}
	if m[1] == "1" {
		return ""
	}
	return m[1]
}

// sanitize lowercases an ID candidate and removes periods, matching the
// emitted-ID grammar: lowercase ASCII, hyphen-separated, with '.' stripped.
func sanitize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, ".", "")
	return s
}

// Valid reports whether id matches the emitted-ID shape: empty, or
// lowercase-alphanumeric-hyphen with no '.', '#', or ':'.
func Valid(id string) bool {
	return idShape.MatchString(id)
}

// SanitizeHeaderID filters characters forbidden in header IDs: '.', '#',
// ':'. It does not lowercase or otherwise normalize — header IDs may be
// author-supplied and only forbidden-character removal is required, not
// the citation-ID grammar.
func SanitizeHeaderID(id string) string {
	return nonSlugChars.ReplaceAllString(id, "")
}

// ParseSuffixDigits is a small helper exposed for tests exercising the
// URL-suffix handling: it reports the raw numeric suffix as an int, for
// readability in test failure output.
func ParseSuffixDigits(url string) (int, bool) {
	base := path.Base(url)
	m := trailingNumericSuffix.FindStringSubmatch(base)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
