// Package fragment implements the annotation fragment writer: render a
// MetadataItem to a standalone HTML file for popup consumption. The
// template is compiled once at init (template.Must) to fail fast on a
// broken template rather than at first render.
package fragment

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gwern/ssgen/internal/atomicfile"
	"github.com/gwern/ssgen/internal/metadata"
)

// MinAbstractLenForFragment is the minimum abstract length (in characters)
// for a fragment to be written, shared with the has-annotation marker's
// threshold.
const MinAbstractLenForFragment = 180

// MaxFilenameBytes is the fragment filename length cap.
const MaxFilenameBytes = 274

var compiledTemplate = template.Must(template.New("annotation").Parse(fragmentTemplate))

const fragmentTemplate = `<div class="annotation">
<p><a href="{{.URL}}" class="docMetadata" id="{{.ID}}">{{.Title}}</a>
<span class="author">{{.Author}}</span>{{if .Date}} <span class="date">{{.Date}}</span>{{end}}{{if .DOI}} <span class="doi">{{.DOI}}</span>{{end}}</p>
<blockquote class="annotation-abstract">{{.AbstractHTML}}</blockquote>
</div>
`

// templateData is the template's input shape; AbstractHTML is
// template.HTML because it is already-sanitized markup, not text to escape.
type templateData struct {
	URL          string
	ID           string
	Title        string
	Author       string
	Date         string
	DOI          string
	AbstractHTML template.HTML
}

// Eligible reports whether it qualifies for a fragment at all.
func Eligible(it metadata.Item) bool {
	return len(it.Abstract) >= MinAbstractLenForFragment
}

// Render builds the fragment HTML for it, inserting abstractHTML as-is.
// Neither Render nor its caller in internal/pipeline runs the typography
// transform or the annotation/archive passes over the abstract; the
// pipeline only makes its relative anchors absolute (RewriteRelativeAnchors)
// before calling Write. Template execution is a pure function of its inputs.
func Render(it metadata.Item, id string, abstractHTML string) (string, error) {
	data := templateData{
		URL:          it.URL,
		ID:           id,
		Title:        it.Title,
		Author:       it.Author,
		Date:         it.Date,
		DOI:          it.DOI,
		AbstractHTML: template.HTML(abstractHTML),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering annotation fragment for %s: %w", it.URL, err)
	}
	return buf.String(), nil
}

// Path computes the fragment path
// "metadata/annotation/<urlencoded-path>.html", truncated to
// MaxFilenameBytes and reporting whether truncation occurred.
func Path(path string) (relPath string, truncated bool) {
	encoded := url.QueryEscape(path)
	filename := encoded + ".html"
	if len(filename) <= MaxFilenameBytes {
		return "metadata/annotation/" + filename, false
	}

	const suffix = ".html"
	keep := MaxFilenameBytes - len(suffix)
	truncatedName := truncateUTF8(encoded, keep) + suffix
	return "metadata/annotation/" + truncatedName, true
}

// truncateUTF8 cuts s to at most n bytes without splitting a multi-byte rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	b := s[:n]
	for len(b) > 0 && !isUTF8Boundary(s, len(b)) {
		b = b[:len(b)-1]
	}
	return b
}

func isUTF8Boundary(s string, i int) bool {
	if i == 0 || i == len(s) {
		return true
	}
	return s[i]&0xC0 != 0x80
}

// Write writes the fragment for it to rootDir, only touching disk if the
// content differs from what's already there. It reports the path written
// to, whether the write happened, and whether the filename had to be
// truncated.
func Write(rootDir string, it metadata.Item, id, abstractHTML string) (path string, changed, truncated bool, err error) {
	relPath, truncated := Path(it.URL)
	html, err := Render(it, id, abstractHTML)
	if err != nil {
		return "", false, truncated, err
	}

	fullPath := rootDir + "/" + relPath
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return relPath, false, truncated, fmt.Errorf("creating annotation fragment directory for %s: %w", relPath, err)
	}
	changed, err = atomicfile.WriteIfChanged(fullPath, []byte(html))
	if err != nil {
		return relPath, false, truncated, fmt.Errorf("writing annotation fragment %s: %w", relPath, err)
	}
	return relPath, changed, truncated, nil
}

// RewriteRelativeAnchors rewrites href="#..." fragments inside abstractHTML
// to be absolute against pageURL. This is a plain string operation
// deliberately kept out of html/template, since the abstract is
// already-trusted markup, not template-escaped content.
func RewriteRelativeAnchors(abstractHTML, pageURL string) string {
	return strings.ReplaceAll(abstractHTML, `href="#`, `href="`+pageURL+`#`)
}
