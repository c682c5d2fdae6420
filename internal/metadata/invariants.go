package metadata

import (
	"fmt"
	"strings"
)

// InvariantError is the tagged fatal-error type for curated-file invariant
// breaches: a typed value naming the offending record instead of a bare
// fmt.Errorf string, so callers can errors.As it if they need to act on it
// programmatically.
type InvariantError struct {
	Rule   string // which invariant was broken
	URL    string // the offending record's URL, if known
	Detail string
}

func (e *InvariantError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("metadata invariant violated (%s): %s (url: %s)", e.Rule, e.Detail, e.URL)
	}
	return fmt.Sprintf("metadata invariant violated (%s): %s", e.Rule, e.Detail)
}

// CheckInvariants enforces the curated file's invariants:
//   - URLs unique; titles unique; abstracts unique
//   - every URL starts with 'h' (http/https), '/' (local), or '?' (special)
//   - no mandatory field (url, title, author, abstract) empty
//   - no URL contains whitespace
//
// It returns the first violation found, naming the offending record.
// Negative-cache entries (all-mandatory-fields-empty) are not subject to
// the mandatory-field rule in auto YAML, but curated entries must never be
// negative caches — they are hand-authored.
func CheckInvariants(items []Item) error {
	seenURL := map[string]bool{}
	seenTitle := map[string]bool{}
	seenAbstract := map[string]bool{}

	for _, it := range items {
		if it.URL == "" {
			return &InvariantError{Rule: "mandatory-field", Detail: "empty url"}
		}
		if it.Title == "" {
			return &InvariantError{Rule: "mandatory-field", URL: it.URL, Detail: "empty title"}
		}
		if it.Author == "" {
			return &InvariantError{Rule: "mandatory-field", URL: it.URL, Detail: "empty author"}
		}
		if it.Abstract == "" {
			return &InvariantError{Rule: "mandatory-field", URL: it.URL, Detail: "empty abstract"}
		}
		if strings.ContainsAny(it.URL, " \t\n\r") {
			return &InvariantError{Rule: "url-whitespace", URL: it.URL, Detail: "url contains whitespace"}
		}
		if !validURLPrefix(it.URL) {
			return &InvariantError{Rule: "url-prefix", URL: it.URL, Detail: "url must start with 'h', '/', or '?'"}
		}

		if seenURL[it.URL] {
			return &InvariantError{Rule: "url-unique", URL: it.URL, Detail: "duplicate url"}
		}
		seenURL[it.URL] = true

		if seenTitle[it.Title] {
			return &InvariantError{Rule: "title-unique", URL: it.URL, Detail: fmt.Sprintf("duplicate title %q", it.Title)}
		}
		seenTitle[it.Title] = true

		if seenAbstract[it.Abstract] {
			return &InvariantError{Rule: "abstract-unique", URL: it.URL, Detail: "duplicate abstract"}
		}
		seenAbstract[it.Abstract] = true
	}

	return nil
}

func validURLPrefix(url string) bool {
	if url == "" {
		return false
	}
	return url[0] == 'h' || url[0] == '/' || url[0] == '?'
}
