package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gwern/ssgen/internal/htmlclean"
)

// crossrefAPIBase is a var, not a const, so tests can point it at an
// httptest.Server instead of the real Crossref API.
var crossrefAPIBase = "https://api.crossref.org/works"

type crossrefResponse struct {
	Message struct {
		Abstract string `json:"abstract"`
	} `json:"message"`
}

// CrossrefRateInterval is the polite rate delay for DOI lookups.
const CrossrefRateInterval = 1 // seconds; wired through config, see internal/config/layered.go

// FetchAbstractByDOI calls Crossref for the given DOI and extracts
// message.abstract. A "Resource not found." response body means no
// abstract is available,
// which is not itself a failure (callers may still have title/author from
// another source, e.g. a PDF's own metadata).
func FetchAbstractByDOI(ctx context.Context, c *RateLimitedClient, doi, mailto string) (string, error) {
	u := fmt.Sprintf("%s/%s", crossrefAPIBase, url.PathEscape(doi))
	if mailto != "" {
		u += "?mailto=" + url.QueryEscape(mailto)
	}

	body, status, err := c.Get(ctx, u)
	if err != nil {
		return "", &Error{Source: "crossref", URL: doi, Permanent: false, Err: err}
	}
	if strings.TrimSpace(string(body)) == "Resource not found." {
		return "", nil
	}
	if status >= 500 {
		return "", &Error{Source: "crossref", URL: doi, Permanent: false, Err: fmt.Errorf("http %d", status)}
	}
	if status >= 400 {
		return "", nil // DOI not in Crossref; not fatal, just no abstract
	}

	var resp crossrefResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &Error{Source: "crossref", URL: doi, Permanent: true, Err: fmt.Errorf("parsing response: %w", err)}
	}

	return htmlclean.Clean(resp.Message.Abstract), nil
}
