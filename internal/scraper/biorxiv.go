package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/gwern/ssgen/internal/htmlclean"
	"github.com/gwern/ssgen/internal/metadata"
	"golang.org/x/net/html"
)

// FetchBiorxiv fetches the biorxiv/medrxiv HTML page and reads its <meta>
// tags. An empty title is a permanent failure (the preprint either
// doesn't exist or the page shape changed).
func FetchBiorxiv(ctx context.Context, c *RateLimitedClient, pageURL string) (metadata.Item, error) {
	body, status, err := c.Get(ctx, pageURL)
	if err != nil {
		return metadata.Item{}, &Error{Source: "biorxiv", URL: pageURL, Permanent: false, Err: err}
	}
	if status >= 500 {
		return metadata.Item{}, &Error{Source: "biorxiv", URL: pageURL, Permanent: false, Err: fmt.Errorf("http %d", status)}
	}
	if status >= 400 {
		return metadata.Item{}, &Error{Source: "biorxiv", URL: pageURL, Permanent: true, Err: fmt.Errorf("http %d", status)}
	}

	meta := extractMetaTags(body)

	title := firstOrEmpty(meta["DC.Title"])
	if title == "" {
		return metadata.Item{}, &Error{Source: "biorxiv", URL: pageURL, Permanent: true, Err: fmt.Errorf("empty title")}
	}

	authors := strings.Join(meta["DC.Contributor"], ", ")

	return metadata.Item{
		Title:    title,
		Author:   NormalizeAuthor(authors),
		Date:     firstOrEmpty(meta["DC.Date"]),
		DOI:      firstOrEmpty(meta["citation_doi"]),
		Abstract: htmlclean.Clean(firstOrEmpty(meta["citation_abstract"])),
	}, nil
}

func firstOrEmpty(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// extractMetaTags walks an HTML document with golang.org/x/net/html and
// collects every <meta name="..." content="..."> into a multi-valued map,
// since DC.Contributor appears once per author.
func extractMetaTags(body []byte) map[string][]string {
	out := map[string][]string{}
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return out
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var name, content string
			for _, a := range n.Attr {
				switch a.Key {
				case "name":
					name = a.Val
				case "content":
					content = a.Val
				}
			}
			if name != "" {
				out[name] = append(out[name], content)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return out
}
