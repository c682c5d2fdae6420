// Package export converts annotation Items to BibTeX entries, for ssgen's
// "export bibtex" command: a citation-heavy site's metadata store is
// naturally also a reference library.
package export

import (
	"fmt"
	"strings"

	"github.com/gwern/ssgen/internal/identifier"
	"github.com/gwern/ssgen/internal/metadata"
)

// ToBibTeX converts one annotation item to a BibTeX entry.
func ToBibTeX(it metadata.Item) string {
	entryType := determineEntryType(it.URL)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, citationKey(it)))

	if it.Author != "" {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(it.Author)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(it.Title)))

	if year := yearOf(it.Date); year != "" {
		b.WriteString(fmt.Sprintf("  year = {%s},\n", year))
	}

	if it.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", it.DOI))
	}

	b.WriteString(fmt.Sprintf("  url = {%s},\n", it.URL))

	if it.Abstract != "" {
		b.WriteString(fmt.Sprintf("  abstract = {%s},\n", escapeLatex(stripHTML(it.Abstract))))
	}

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList converts multiple items, skipping negative-cache entries
// (no title, author, or abstract means nothing was ever scraped).
func ToBibTeXList(items []metadata.Item) string {
	var entries []string
	for _, it := range items {
		if it.IsNegativeCache() {
			continue
		}
		entries = append(entries, ToBibTeX(it))
	}
	return strings.Join(entries, "\n")
}

// determineEntryType returns the BibTeX entry type for a source URL:
// preprint servers export as @article, everything else as @misc, since the
// annotation store carries no structured venue field to distinguish
// conference proceedings.
func determineEntryType(url string) string {
	lower := strings.ToLower(url)
	for _, host := range []string{"arxiv.org", "biorxiv.org", "medrxiv.org"} {
		if strings.Contains(lower, host) {
			return "article"
		}
	}
	return "misc"
}

// citationKey derives the BibTeX entry key, reusing the same
// surname-year-[N] scheme the rewrite pipeline uses for link IDs
// (internal/identifier), falling back to a URL-derived key when no ID can
// be generated (e.g. a negative cache with no author/date).
func citationKey(it metadata.Item) string {
	if id := identifier.Generate(it.URL, it.Author, it.Date); id != "" {
		return id
	}
	return identifier.SanitizeHeaderID(strings.TrimPrefix(it.URL, "https://"))
}

// formatAuthors splits a comma-joined "First Last, First Last" author
// string into BibTeX's "Last, First and Last, First" form.
func formatAuthors(author string) string {
	names := strings.Split(author, ",")
	formatted := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		formatted = append(formatted, toLastFirst(name))
	}
	return strings.Join(formatted, " and ")
}

// toLastFirst rewrites "First Middle Last" as "Last, First Middle".
func toLastFirst(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return name
	}
	last := fields[len(fields)-1]
	first := strings.Join(fields[:len(fields)-1], " ")
	return last + ", " + first
}

// FilterNew returns the subset of items not already present in idx,
// matched by citation key or DOI, so a caller appending to an existing
// .bib file doesn't duplicate entries it has already written.
func FilterNew(items []metadata.Item, idx *BibTeXIndex) []metadata.Item {
	out := make([]metadata.Item, 0, len(items))
	for _, it := range items {
		if idx.HasEntry(citationKey(it), it.DOI) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// yearOf extracts the leading four-digit year from an ISO date string.
func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// stripHTML removes tags from an already-rewritten abstract fragment so it
// survives as plain text inside a BibTeX field; it is not a general-purpose
// sanitizer, just enough to keep "<p>...</p>" style markup out of .bib output.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// NewReplacer makes one pass and never rescans its own output, so the
	// backslashes and braces it inserts are not escaped again; with
	// single-character keys the order of the pairs does not matter.
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
