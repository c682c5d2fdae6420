package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/gwern/ssgen/internal/htmlclean"
	"github.com/gwern/ssgen/internal/imagecheck"
	"github.com/gwern/ssgen/internal/metadata"
)

const wikipediaSummaryBase = "https://en.wikipedia.org/api/rest_v1/page/summary"

type wikipediaSummary struct {
	Title       string `json:"title"`
	ExtractHTML string `json:"extract_html"`
	Type        string `json:"type"` // "disambiguation" for disambiguation pages
	Thumbnail   *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// FetchWikipedia fetches the REST summary endpoint, returns a permanent
// scrape error for disambiguation pages (a human must link to a specific
// article; this function does not abort the build itself), and
// prepends a <figure> for the thumbnail if present, after running the
// image-color check to decide whether it needs the invertible-auto class.
func FetchWikipedia(ctx context.Context, c *RateLimitedClient, title string) (metadata.Item, error) {
	u := fmt.Sprintf("%s/%s", wikipediaSummaryBase, url.PathEscape(title))

	body, status, err := c.Get(ctx, u)
	if err != nil {
		return metadata.Item{}, &Error{Source: "wikipedia", URL: title, Permanent: false, Err: err}
	}
	if status >= 500 {
		return metadata.Item{}, &Error{Source: "wikipedia", URL: title, Permanent: false, Err: fmt.Errorf("http %d", status)}
	}
	if status >= 400 {
		return metadata.Item{}, &Error{Source: "wikipedia", URL: title, Permanent: true, Err: fmt.Errorf("http %d", status)}
	}

	var summary wikipediaSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return metadata.Item{}, &Error{Source: "wikipedia", URL: title, Permanent: true, Err: fmt.Errorf("parsing summary: %w", err)}
	}

	if summary.Type == "disambiguation" {
		return metadata.Item{}, &Error{Source: "wikipedia", URL: title, Permanent: true, Err: fmt.Errorf("%q is a disambiguation page, link to a specific article", title)}
	}

	abstract := summary.ExtractHTML
	if summary.Thumbnail != nil && summary.Thumbnail.Source != "" {
		figure, err := buildThumbnailFigure(ctx, c, summary.Thumbnail.Source)
		if err != nil {
			return metadata.Item{}, err
		}
		abstract = figure + abstract
	}

	return metadata.Item{
		Title:    summary.Title,
		Abstract: htmlclean.Clean(abstract),
	}, nil
}

// buildThumbnailFigure downloads the thumbnail, runs the image-color
// check, and renders a <figure> carrying invertible-auto if warranted.
func buildThumbnailFigure(ctx context.Context, c *RateLimitedClient, src string) (string, error) {
	body, status, err := c.Get(ctx, src)
	if err != nil {
		return "", &Error{Source: "wikipedia", URL: src, Permanent: false, Err: err}
	}
	if status >= 400 {
		// Missing thumbnail isn't fatal to the article scrape.
		return "", nil
	}

	class := ""
	invertible, err := imagecheck.IsInvertible(bytes.NewReader(body))
	if err == nil && invertible {
		class = ` class="invertible-auto"`
	}

	return fmt.Sprintf(`<figure><img src="%s"%s></figure>`, src, class), nil
}
