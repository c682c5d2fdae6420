package scraper

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/gwern/ssgen/internal/htmlclean"
	"github.com/gwern/ssgen/internal/metadata"
)

// ArxivRateInterval is the polite rate delay per call, ~15s.
const ArxivRateInterval = 15 // seconds; wired through config, see internal/config/layered.go

const arxivAPIBase = "https://export.arxiv.org/api/query"

type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
	DOI string `xml:"http://arxiv.org/schemas/atom doi"`
}

// FetchArxiv fetches the Atom feed for the given arxiv ID, parses
// title/author/date/doi/summary, renders the LaTeX-flavored summary to
// HTML, then runs the HTML cleaner.
func FetchArxiv(ctx context.Context, c *RateLimitedClient, arxivID string) (metadata.Item, error) {
	u := fmt.Sprintf("%s?id_list=%s", arxivAPIBase, url.QueryEscape(arxivID))

	body, status, err := c.Get(ctx, u)
	if err != nil {
		return metadata.Item{}, &Error{Source: "arxiv", URL: arxivID, Permanent: false, Err: err}
	}
	if status >= 500 {
		return metadata.Item{}, &Error{Source: "arxiv", URL: arxivID, Permanent: false, Err: fmt.Errorf("http %d", status)}
	}
	if status >= 400 {
		return metadata.Item{}, &Error{Source: "arxiv", URL: arxivID, Permanent: true, Err: fmt.Errorf("http %d", status)}
	}

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return metadata.Item{}, &Error{Source: "arxiv", URL: arxivID, Permanent: true, Err: fmt.Errorf("parsing atom feed: %w", err)}
	}
	if len(feed.Entries) == 0 {
		return metadata.Item{}, &Error{Source: "arxiv", URL: arxivID, Permanent: true, Err: fmt.Errorf("no entry for id %s", arxivID)}
	}

	entry := feed.Entries[0]
	names := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		names = append(names, a.Name)
	}

	date := entry.Published
	if len(date) >= 10 {
		date = date[:10]
	}

	return metadata.Item{
		Title:    strings.TrimSpace(collapseWhitespace(entry.Title)),
		Author:   NormalizeAuthor(strings.Join(names, ", ")),
		Date:     date,
		DOI:      entry.DOI,
		Abstract: htmlclean.Clean(latexSummaryToHTML(entry.Summary)),
	}, nil
}

var latexPercentEscape = regexp.MustCompile(`\\%`)
var latexParaBreak = regexp.MustCompile(`\n\s*\n`)
var latexEmph = regexp.MustCompile(`\\emph\{([^}]*)\}`)
var latexTextbf = regexp.MustCompile(`\\textbf\{([^}]*)\}`)
var whitespaceRun = regexp.MustCompile(`\s+`)

// latexSummaryToHTML renders an arxiv summary's light LaTeX markup as
// HTML: normalize %-escape sequences, convert blank lines to paragraph
// breaks, and turn \emph/\textbf into their HTML equivalents.
func latexSummaryToHTML(summary string) string {
	s := latexPercentEscape.ReplaceAllString(summary, "%")
	s = latexEmph.ReplaceAllString(s, "<em>$1</em>")
	s = latexTextbf.ReplaceAllString(s, "<strong>$1</strong>")

	paragraphs := latexParaBreak.Split(strings.TrimSpace(s), -1)
	for i, p := range paragraphs {
		paragraphs[i] = "<p>" + strings.TrimSpace(p) + "</p>"
	}
	return strings.Join(paragraphs, "\n")
}

func collapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}
