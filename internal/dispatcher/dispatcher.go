// Package dispatcher implements the scraper dispatcher: routes a
// canonical Path to the right scraper, classifying failures as permanent
// (cache negatively) or temporary (retry next build).
package dispatcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gwern/ssgen/internal/metadata"
	"github.com/gwern/ssgen/internal/scraper"
)

// Outcome is the three-way result of a dispatch.
type Outcome int

const (
	OutcomeItem      Outcome = iota // scrape succeeded, Item is populated
	OutcomePermanent                // permanent failure, cache a negative entry
	OutcomeTemporary                // temporary failure, do not cache
)

// plosDomains are the enumerated PLOS domains routed to the pubmed helper,
// alongside NCBI PMC.
var plosDomains = []string{
	"journals.plos.org",
	"plosone.org",
}

// Clients bundles the shared rate-limited HTTP clients each source needs,
// so the dispatcher owns exactly one limiter per remote service, reused
// across calls.
type Clients struct {
	Arxiv          *scraper.RateLimitedClient
	Biorxiv        *scraper.RateLimitedClient
	Crossref       *scraper.RateLimitedClient
	Wikipedia      *scraper.RateLimitedClient
	WikipediaMode  string // "client" (do not annotate) or "store" (fetch via REST)
	CrossrefMailto string
}

// Dispatch routes path to its scraper by matching against eight ordered
// rules.
func Dispatch(ctx context.Context, c *Clients, path string) (metadata.Item, Outcome, error) {
	path = metadata.Canonicalize(path)

	switch {
	case path == "":
		return metadata.Item{}, OutcomePermanent, fmt.Errorf("empty url")

	case isWikipediaURL(path):
		if c.WikipediaMode != "store" {
			return metadata.Item{}, OutcomeTemporary, fmt.Errorf("wikipedia annotation handled client-side")
		}
		title := wikipediaTitle(path)
		item, err := scraper.FetchWikipedia(ctx, c.Wikipedia, title)
		return classify(item, err)

	case isArxivURL(path):
		id := arxivID(path)
		item, err := scraper.FetchArxiv(ctx, c.Arxiv, id)
		return classify(item, err)

	case isBiorxivURL(path):
		item, err := scraper.FetchBiorxiv(ctx, c.Biorxiv, path)
		return classify(item, err)

	case isPubmedURL(path):
		id := pubmedID(path)
		item, err := scraper.FetchPubmed(ctx, id)
		return classify(item, err)

	case strings.HasSuffix(strings.ToLower(path), ".pdf") && isLocalPath(path):
		item, err := scraper.FetchPDFMetadata(ctx, c.Crossref, path, c.CrossrefMailto)
		return classify(item, err)

	case isLocalPath(path) || isSelfURL(path):
		// self-pages handle themselves at read time; the dispatcher never
		// scrapes them.
		return metadata.Item{}, OutcomePermanent, fmt.Errorf("self-page, no dispatch needed: %s", path)

	default:
		return metadata.Item{}, OutcomePermanent, fmt.Errorf("no scraper matches: %s", path)
	}
}

func classify(item metadata.Item, err error) (metadata.Item, Outcome, error) {
	if err == nil {
		return item, OutcomeItem, nil
	}
	if scraper.IsPermanent(err) {
		return metadata.Item{}, OutcomePermanent, err
	}
	return metadata.Item{}, OutcomeTemporary, err
}

func isWikipediaURL(path string) bool {
	return strings.Contains(path, "wikipedia.org/wiki/")
}

func wikipediaTitle(path string) string {
	idx := strings.Index(path, "/wiki/")
	if idx < 0 {
		return ""
	}
	title := path[idx+len("/wiki/"):]
	if unescaped, err := url.PathUnescape(title); err == nil {
		return unescaped
	}
	return title
}

func isArxivURL(path string) bool {
	return strings.Contains(path, "arxiv.org/abs/") || strings.Contains(path, "arxiv.org/pdf/")
}

func arxivID(path string) string {
	for _, marker := range []string{"/abs/", "/pdf/"} {
		if idx := strings.Index(path, marker); idx >= 0 {
			id := path[idx+len(marker):]
			return strings.TrimSuffix(id, ".pdf")
		}
	}
	return path
}

func isBiorxivURL(path string) bool {
	return strings.Contains(path, "biorxiv.org/content/") || strings.Contains(path, "medrxiv.org/content/")
}

func isPubmedURL(path string) bool {
	if strings.Contains(path, "ncbi.nlm.nih.gov/pmc/") {
		return true
	}
	for _, d := range plosDomains {
		if strings.Contains(path, d) {
			return true
		}
	}
	return false
}

func pubmedID(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if len(parts) == 0 {
		return path
	}
	return parts[len(parts)-1]
}

func isLocalPath(path string) bool {
	return strings.HasPrefix(path, "/")
}

func isSelfURL(path string) bool {
	return strings.HasPrefix(path, "?") || !strings.Contains(path, "://")
}
