// Package metadata implements the annotation store: an in-memory
// Path->MetadataItem map backed by two ordered YAML files (curated,
// authoritative; auto, append-only scraper output).
package metadata

import "strings"

// Item is a single annotation record: all fields are strings; Tags is an
// ordered list of slash-separated tag paths.
type Item struct {
	URL      string
	Title    string
	Author   string
	Date     string // ISO YYYY-MM-DD, or empty
	DOI      string
	Tags     []string
	Abstract string // sanitized HTML fragment
}

// IsNegativeCache reports whether an Item is a "we tried, nothing is
// available" placeholder: all mandatory fields (title, author, abstract)
// empty.
func (it Item) IsNegativeCache() bool {
	return it.Title == "" && it.Author == "" && it.Abstract == ""
}

// record is the on-disk shape for both the curated and auto YAML files:
// url, title, author, date, doi, abstract. Tags are not part of the
// persisted shape: loaded Items have no Tags, and Tags are omitted from
// round-tripped records here.
type record struct {
	URL      string `yaml:"url"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Date     string `yaml:"date"`
	DOI      string `yaml:"doi"`
	Abstract string `yaml:"abstract"`
}

func (it Item) toRecord() record {
	return record{
		URL:      it.URL,
		Title:    it.Title,
		Author:   it.Author,
		Date:     it.Date,
		DOI:      it.DOI,
		Abstract: it.Abstract,
	}
}

func (r record) toItem() Item {
	return Item{
		URL:      r.URL,
		Title:    r.Title,
		Author:   r.Author,
		Date:     r.Date,
		DOI:      r.DOI,
		Abstract: r.Abstract,
	}
}

// ParseTags splits a comma-joined tag-path string into an ordered list,
// e.g. "ai/nn, history" -> ["ai/nn", "history"]; each element is itself a
// slash-separated path, not split further here.
func ParseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
