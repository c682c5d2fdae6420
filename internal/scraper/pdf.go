package scraper

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/gwern/ssgen/internal/metadata"
	"github.com/ledongthuc/pdf"
)

// ExifToolBin is the shelled-out metadata extractor.
var ExifToolBin = "exiftool"

// softwareCreators lists Author-field values that are really software
// names, not people, for the Creator-preference heuristic below.
var softwareCreators = []string{"adobe", "latex", "tex", "microsoft word", "ocr", "acrobat"}

// FetchPDFMetadata runs exiftool for Title/Author/Date/Creator, applies
// the Creator-preference heuristic, finds a DOI in the document text, then
// attempts a Crossref doi->abstract lookup.
func FetchPDFMetadata(ctx context.Context, c *RateLimitedClient, path, mailto string) (metadata.Item, error) {
	fields, err := runExifTool(ctx, path)
	if err != nil {
		return metadata.Item{}, &Error{Source: "pdf", URL: path, Permanent: false, Err: err}
	}

	author := fields["Author"]
	creator := fields["Creator"]
	if len(creator) > len(author) || isSoftwareCreator(author) {
		author = creator
	}

	doi, err := extractDOIFromPDF(path)
	if err != nil {
		return metadata.Item{}, &Error{Source: "pdf", URL: path, Permanent: false, Err: err}
	}

	item := metadata.Item{
		Title:  fields["Title"],
		Author: NormalizeAuthor(author),
		Date:   fields["CreateDate"],
		DOI:    doi,
	}

	if doi != "" && c != nil {
		abstract, err := FetchAbstractByDOI(ctx, c, doi, mailto)
		if err != nil {
			return metadata.Item{}, err
		}
		item.Abstract = abstract
	}

	return item, nil
}

func isSoftwareCreator(author string) bool {
	lower := strings.ToLower(author)
	for _, sw := range softwareCreators {
		if strings.Contains(lower, sw) {
			return true
		}
	}
	return false
}

var exifLine = regexp.MustCompile(`^([A-Za-z ]+?)\s*:\s*(.*)$`)

// runExifTool shells out to exiftool (without -s, so field names come back
// in spaced descriptive form such as "Create Date") and parses its
// "Field: Value" output, removing the spaces from each field name.
func runExifTool(ctx context.Context, path string) (map[string]string, error) {
	cmd := exec.CommandContext(ctx, ExifToolBin, "-Title", "-Author", "-Creator", "-CreateDate", path)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", ExifToolBin, err)
	}

	fields := map[string]string{}
	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		m := exifLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		fields[strings.ReplaceAll(m[1], " ", "")] = strings.TrimSpace(m[2])
	}
	return fields, nil
}

var pdfDOIPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// extractDOIFromPDF searches the first three pages of a PDF for a DOI.
func extractDOIFromPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, match := range pdfDOIPattern.FindAllString(text, -1) {
			match = strings.TrimRight(match, ".,;:)")
			if len(match) >= 10 && strings.HasPrefix(match, "10.") {
				return match, nil
			}
		}
	}
	return "", nil
}
