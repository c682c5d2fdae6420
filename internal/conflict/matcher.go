package conflict

import "github.com/gwern/ssgen/internal/metadata"

// DiffItems compares oldItems (the curated set currently on disk) against
// newItems (a proposed replacement), matching by URL first (the store's
// invariant-checked unique key), then by title for entries whose URL
// changed underneath a rename.
func DiffItems(oldItems, newItems []metadata.Item) DiffResult {
	result := DiffResult{}

	oldByURL := make(map[string]metadata.Item)
	oldByTitle := make(map[string]metadata.Item)
	for _, it := range oldItems {
		if it.URL != "" {
			oldByURL[it.URL] = it
		}
		if it.Title != "" {
			oldByTitle[it.Title] = it
		}
	}

	oldMatched := make(map[string]bool) // keyed by URL
	newMatched := make(map[string]bool) // keyed by URL

	// First pass: match by URL.
	for _, n := range newItems {
		if n.URL == "" {
			continue
		}
		if o, ok := oldByURL[n.URL]; ok {
			result.Matches = append(result.Matches, ItemMatch{
				Old:       o,
				New:       n,
				MatchedBy: "url",
				Changed:   !itemsEqual(o, n),
			})
			oldMatched[o.URL] = true
			newMatched[n.URL] = true
		}
	}

	// Second pass: match by title for entries not yet matched by URL.
	for _, n := range newItems {
		if newMatched[n.URL] || n.Title == "" {
			continue
		}
		if o, ok := oldByTitle[n.Title]; ok && !oldMatched[o.URL] {
			result.Matches = append(result.Matches, ItemMatch{
				Old:       o,
				New:       n,
				MatchedBy: "title",
				Changed:   !itemsEqual(o, n),
			})
			oldMatched[o.URL] = true
			newMatched[n.URL] = true
		}
	}

	for _, o := range oldItems {
		if !oldMatched[o.URL] {
			result.OldOnly = append(result.OldOnly, o)
		}
	}
	for _, n := range newItems {
		if !newMatched[n.URL] {
			result.NewOnly = append(result.NewOnly, n)
		}
	}

	return result
}

func itemsEqual(a, b metadata.Item) bool {
	if a.URL != b.URL || a.Title != b.Title || a.Author != b.Author ||
		a.Date != b.Date || a.DOI != b.DOI || a.Abstract != b.Abstract {
		return false
	}
	if len(a.Tags) != len(b.Tags) {
		return false
	}
	for i := range a.Tags {
		if a.Tags[i] != b.Tags[i] {
			return false
		}
	}
	return true
}
