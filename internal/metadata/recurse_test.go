package metadata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurseInlineAppliesInjectOncePerItem(t *testing.T) {
	dir := t.TempDir()
	curated := writeCurated(t, dir, `
- url: https://example.com/a
  title: A
  author: X
  date: "2020-01-01"
  doi: ""
  abstract: "<p>see <a href=\"/b\">b</a></p>"
- url: https://example.com/b
  title: B
  author: Y
  date: "2020-01-01"
  doi: ""
  abstract: "<p>plain</p>"
`)
	store, err := Load(curated, filepath.Join(dir, "auto.yaml"))
	require.NoError(t, err)

	calls := 0
	inject := func(html string, s *Store) (string, error) {
		calls++
		return html + "<!--injected-->", nil
	}

	out, err := RecurseInline(store, inject)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	a, ok := out.Lookup("https://example.com/a")
	require.True(t, ok)
	assert.Contains(t, a.Abstract, "<!--injected-->")

	// original store is untouched
	orig, _ := store.Lookup("https://example.com/a")
	assert.NotContains(t, orig.Abstract, "<!--injected-->")
}

func TestRecurseInlineSkipsEmptyAbstract(t *testing.T) {
	dir := t.TempDir()
	curated := writeCurated(t, dir, `
- url: https://example.com/a
  title: A
  author: X
  date: "2020-01-01"
  doi: ""
  abstract: "<p>x</p>"
`)
	auto := filepath.Join(dir, "auto.yaml")
	require.NoError(t, writeYAMLRecords(auto, []Item{{URL: "https://example.com/dead"}}))

	store, err := Load(curated, auto)
	require.NoError(t, err)

	calls := 0
	inject := func(html string, s *Store) (string, error) {
		calls++
		return html, nil
	}
	_, err = RecurseInline(store, inject)
	require.NoError(t, err)
	assert.Equal(t, 1, calls) // negative-cache entry has an empty abstract, skipped
}
