package scraper

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gwern/ssgen/internal/htmlclean"
	"github.com/gwern/ssgen/internal/metadata"
)

// PubmedHelperBin is the external helper program's name, shelled out to
// fetch a five-line record (title, author, date, doi, abstract) for a PMID.
var PubmedHelperBin = "pubmed-fetch"

// FetchPubmed runs the external pubmed helper for the given PMID and
// parses its five-line stdout. Fewer than five lines is a permanent
// failure.
func FetchPubmed(ctx context.Context, pmid string) (metadata.Item, error) {
	cmd := exec.CommandContext(ctx, PubmedHelperBin, pmid)
	out, err := cmd.Output()
	if err != nil {
		return metadata.Item{}, &Error{Source: "pubmed", URL: pmid, Permanent: false, Err: fmt.Errorf("running %s: %w", PubmedHelperBin, err)}
	}

	lines := make([]string, 0, 5)
	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}

	if len(lines) < 5 {
		return metadata.Item{}, &Error{Source: "pubmed", URL: pmid, Permanent: true, Err: fmt.Errorf("helper emitted %d lines, want 5", len(lines))}
	}

	return metadata.Item{
		Title:    lines[0],
		Author:   NormalizeAuthor(lines[1]),
		Date:     lines[2],
		DOI:      lines[3],
		Abstract: htmlclean.Clean(lines[4]),
	}, nil
}
