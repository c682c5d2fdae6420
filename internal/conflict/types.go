// Package conflict implements "ssgen metadata diff": comparing the
// curated annotation YAML on disk against a proposed replacement (e.g.
// after a human edit), matching entries by URL first and title second.
// URL is the curated store's invariant-checked unique key; title is the
// secondary signal for entries whose URL changed underneath a rename.
package conflict

import "github.com/gwern/ssgen/internal/metadata"

// ItemMatch is one annotation present on both sides of a diff, paired with
// how the match was established.
type ItemMatch struct {
	Old       metadata.Item
	New       metadata.Item
	MatchedBy string // "url" or "title"
	Changed   bool   // true if any field differs between Old and New
}

// DiffResult is the outcome of comparing two annotation sets.
type DiffResult struct {
	Matches []ItemMatch
	OldOnly []metadata.Item // present before, absent in the proposed replacement (removed)
	NewOnly []metadata.Item // absent before, present in the proposed replacement (added)
}
