package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gwern/ssgen/internal/archive"
	"github.com/gwern/ssgen/internal/ast"
	"github.com/gwern/ssgen/internal/config"
	"github.com/gwern/ssgen/internal/dispatcher"
	"github.com/gwern/ssgen/internal/imagecache"
	"github.com/gwern/ssgen/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	dir := t.TempDir()
	curated := filepath.Join(dir, "curated.yaml")
	require.NoError(t, os.WriteFile(curated, []byte("[]\n"), 0644))

	store, err := metadata.Load(curated, filepath.Join(dir, "auto.yaml"))
	require.NoError(t, err)

	imgCache, err := imagecache.Load(filepath.Join(dir, "images.yaml"))
	require.NoError(t, err)

	cfg, err := config.NewLayered("")
	require.NoError(t, err)

	return &Driver{
		Metadata: store,
		Archive:  archive.New(),
		Images:   imgCache,
		Clients:  &dispatcher.Clients{},
		Config:   cfg,
		RootDir:  dir,
	}
}

func TestEnsureAnnotationSkipsKnownTarget(t *testing.T) {
	d := newTestDriver(t)
	require.NoError(t, d.Metadata.AppendAuto("/doc/known", metadata.Item{URL: "/doc/known", Title: "T", Author: "A", Abstract: "x"}))

	hook := d.ensureAnnotation(context.Background())
	require.NoError(t, hook("/doc/known"))
}

func TestEnsureAnnotationCachesNegativeOnPermanentFailure(t *testing.T) {
	d := newTestDriver(t)

	hook := d.ensureAnnotation(context.Background())
	require.NoError(t, hook("/doc/missing"))

	item, ok := d.Metadata.Lookup("/doc/missing")
	require.True(t, ok)
	assert.True(t, item.IsNegativeCache())
}

func TestArchiveFetchBudgetBlocksNewSnapshots(t *testing.T) {
	d := newTestDriver(t)
	d.newArchived.Store(int64(d.Config.ArchiveMaxNewPerBuild()))

	fetch := d.archiveFetch(context.Background())
	_, err := fetch("https://example.com/new-page")
	assert.Error(t, err)
}

func TestArchiveFetchAllowsKnownURLPastBudget(t *testing.T) {
	d := newTestDriver(t)
	d.Archive.Restore([]archive.Record{{URL: "https://example.com/known", State: archive.StateSucceeded, LocalPath: "doc/www/example.com/abc.html"}})
	d.newArchived.Store(int64(d.Config.ArchiveMaxNewPerBuild()))

	fetch := d.archiveFetch(context.Background())
	path, err := fetch("https://example.com/known")
	require.NoError(t, err)
	assert.Equal(t, "doc/www/example.com/abc.html", path)
}

func TestIsInvertibleSkipsRemoteTarget(t *testing.T) {
	d := newTestDriver(t)
	check := d.isInvertible(context.Background())

	ok, err := check("https://example.com/image.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsInvertibleSkipsMissingLocalFile(t *testing.T) {
	d := newTestDriver(t)
	check := d.isInvertible(context.Background())

	ok, err := check("/images/does-not-exist.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProcessDocumentsWritesFragmentForEligibleAnnotation(t *testing.T) {
	d := newTestDriver(t)
	require.NoError(t, d.Metadata.AppendAuto("https://example.com/paper", metadata.Item{
		URL: "https://example.com/paper", Title: "A Paper", Author: "A. Author", Date: "2020-01-01",
		Abstract: "This abstract is long enough to clear the 180 character floor so that the fragment writer considers it eligible for its own standalone popup file on disk, with a few more words added to be sure.",
	}))

	doc := &ast.Document{Path: "/doc/page", Blocks: []ast.Block{
		&ast.Paragraph{Inlines: []ast.Inline{
			&ast.Link{Target: "https://example.com/paper", Attr: ast.Attr{ID: "author-2020"}, Inlines: []ast.Inline{&ast.Str{Text: "a paper"}}},
		}},
	}}

	result, err := d.ProcessDocuments(context.Background(), []*ast.Document{doc})
	require.NoError(t, err)
	assert.Equal(t, 1, result.DocumentsProcessed)
	assert.Equal(t, 1, result.FragmentsWritten)
	assert.Empty(t, result.Errors)

	written, err := os.ReadFile(filepath.Join(d.RootDir, "metadata/annotation/https%3A%2F%2Fexample.com%2Fpaper.html"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "A Paper")
}

func TestProcessDocumentsRecordsPerDocumentError(t *testing.T) {
	d := newTestDriver(t)
	doc := &ast.Document{Path: "/doc/bad", Blocks: []ast.Block{
		&ast.Paragraph{Inlines: []ast.Inline{
			&ast.Link{Target: "#fn1", Attr: ast.Attr{Classes: []string{"footnote-ref"}}, Inlines: []ast.Inline{&ast.Str{Text: "xq"}}},
		}},
	}}

	result, err := d.ProcessDocuments(context.Background(), []*ast.Document{doc})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "/doc/bad", result.Errors[0].Path)
}
