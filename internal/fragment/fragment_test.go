package fragment

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gwern/ssgen/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligible(t *testing.T) {
	assert.False(t, Eligible(metadata.Item{Abstract: "short"}))
	assert.True(t, Eligible(metadata.Item{Abstract: strings.Repeat("x", 200)}))
}

func TestRenderIncludesFields(t *testing.T) {
	it := metadata.Item{URL: "https://example.com/a", Title: "A Title", Author: "A Author", Date: "2020-01-01", DOI: "10.1/x"}
	html, err := Render(it, "example-2020", "<p>abstract text</p>")
	require.NoError(t, err)
	assert.Contains(t, html, "A Title")
	assert.Contains(t, html, "A Author")
	assert.Contains(t, html, "10.1/x")
	assert.Contains(t, html, "<p>abstract text</p>")
	assert.Contains(t, html, `id="example-2020"`)
}

func TestPathNoTruncation(t *testing.T) {
	relPath, truncated := Path("/doc/short-page")
	assert.False(t, truncated)
	assert.True(t, strings.HasPrefix(relPath, "metadata/annotation/"))
	assert.True(t, strings.HasSuffix(relPath, ".html"))
}

func TestPathTruncatesLongURL(t *testing.T) {
	relPath, truncated := Path("/doc/" + strings.Repeat("a", 400))
	assert.True(t, truncated)
	assert.LessOrEqual(t, len(filepath.Base(relPath)), MaxFilenameBytes)
}

func TestWriteIsIdempotent(t *testing.T) {
	root := t.TempDir()
	it := metadata.Item{URL: "/doc/a", Title: "T", Author: "A"}

	_, changed1, _, err := Write(root, it, "id1", "<p>abstract</p>")
	require.NoError(t, err)
	assert.True(t, changed1)

	_, changed2, _, err := Write(root, it, "id1", "<p>abstract</p>")
	require.NoError(t, err)
	assert.False(t, changed2, "identical content must not rewrite the file")
}

func TestRewriteRelativeAnchors(t *testing.T) {
	out := RewriteRelativeAnchors(`<a href="#fn1">1</a>`, "/doc/page")
	assert.Equal(t, `<a href="/doc/page#fn1">1</a>`, out)
}
