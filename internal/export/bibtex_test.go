package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gwern/ssgen/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBibTeXArxivArticle(t *testing.T) {
	it := metadata.Item{
		URL: "https://arxiv.org/abs/1706.03762", Title: "Attention Is All You Need",
		Author: "Ashish Vaswani, Noam Shazeer", Date: "2017-06-12", DOI: "10.48550/arXiv.1706.03762",
		Abstract: "<p>The dominant sequence transduction models.</p>",
	}

	got := ToBibTeX(it)

	assert.True(t, strings.HasPrefix(got, "@article{vaswani-shazeer-2017,"))
	assert.Contains(t, got, "author = {Vaswani, Ashish and Shazeer, Noam}")
	assert.Contains(t, got, "title = {Attention Is All You Need}")
	assert.Contains(t, got, "year = {2017}")
	assert.Contains(t, got, "doi = {10.48550/arXiv.1706.03762}")
	assert.Contains(t, got, "abstract = {The dominant sequence transduction models.}")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(got), "}"))
}

func TestToBibTeXNonPreprintIsMisc(t *testing.T) {
	it := metadata.Item{URL: "https://example.com/post", Title: "A Post", Author: "Some Author", Date: "2021-01-01"}
	got := ToBibTeX(it)
	assert.True(t, strings.HasPrefix(got, "@misc{"))
}

func TestToBibTeXOmitsEmptyOptionalFields(t *testing.T) {
	it := metadata.Item{URL: "https://example.com/x", Title: "Minimal", Author: "A Author", Date: "2020-01-01"}
	got := ToBibTeX(it)
	assert.NotContains(t, got, "doi = ")
	assert.NotContains(t, got, "abstract = ")
	assert.Contains(t, got, "title = {Minimal}")
}

func TestFormatAuthorsSingleAndMultiple(t *testing.T) {
	assert.Equal(t, "Smith, John", formatAuthors("John Smith"))
	assert.Equal(t, "Smith, John and Doe, Jane", formatAuthors("John Smith, Jane Doe"))
	assert.Equal(t, "Corporation", formatAuthors("Corporation"))
}

func TestEscapeLatex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"100% effective", `100\% effective`},
		{"A & B", `A \& B`},
		{"$100 price", `\$100 price`},
		{"under_score", `under\_score`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLatex(tt.input))
	}
}

func TestToBibTeXListSkipsNegativeCache(t *testing.T) {
	items := []metadata.Item{
		{URL: "https://example.com/a", Title: "A", Author: "X Y", Date: "2020-01-01"},
		{URL: "https://example.com/missing"}, // negative cache
	}
	got := ToBibTeXList(items)
	assert.Contains(t, got, "title = {A}")
	assert.Equal(t, 1, strings.Count(got, "@"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "hello world", stripHTML("<p>hello <b>world</b></p>"))
}

func TestParseBibTeXFileMissingIsEmptyIndex(t *testing.T) {
	idx, err := ParseBibTeXFile(filepath.Join(t.TempDir(), "nonexistent.bib"))
	require.NoError(t, err)
	assert.False(t, idx.HasEntry("anything", ""))
}

func TestAppendToBibFileThenParseRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.bib")
	it := metadata.Item{
		URL: "https://arxiv.org/abs/1706.03762", Title: "Attention Is All You Need",
		Author: "Ashish Vaswani, Noam Shazeer", Date: "2017-06-12", DOI: "10.48550/arXiv.1706.03762",
	}
	require.NoError(t, AppendToBibFile(path, ToBibTeX(it)))

	idx, err := ParseBibTeXFile(path)
	require.NoError(t, err)
	assert.True(t, idx.HasEntry("vaswani-shazeer-2017", ""))
	assert.True(t, idx.HasEntry("some-other-key", "10.48550/arXiv.1706.03762"))
	assert.False(t, idx.HasEntry("some-other-key", "10.0000/not-present"))
}

func TestFilterNewExcludesAlreadyIndexedEntries(t *testing.T) {
	existing := NewBibTeXIndex()
	existing.DOIs["10.48550/arxiv.1706.03762"] = "vaswani-shazeer-2017"

	items := []metadata.Item{
		{URL: "https://arxiv.org/abs/1706.03762", Title: "Attention Is All You Need", Author: "Ashish Vaswani", Date: "2017-06-12", DOI: "10.48550/arXiv.1706.03762"},
		{URL: "https://example.com/new", Title: "A New Paper", Author: "Some Author", Date: "2022-01-01"},
	}

	got := FilterNew(items, existing)
	require.Len(t, got, 1)
	assert.Equal(t, "https://example.com/new", got[0].URL)
}
