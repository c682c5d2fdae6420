package rewrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gwern/ssgen/internal/metadata"
	"github.com/stretchr/testify/require"
)

// newTestStore builds an empty metadata.Store backed by temp files, for
// passes that only need ctx.Metadata to be non-nil.
func newTestStore(t *testing.T) *metadata.Store {
	dir := t.TempDir()
	curated := filepath.Join(dir, "curated.yaml")
	require.NoError(t, os.WriteFile(curated, []byte("[]\n"), 0644))
	s, err := metadata.Load(curated, filepath.Join(dir, "auto.yaml"))
	require.NoError(t, err)
	return s
}

// storeWithItem builds a metadata.Store seeded with one auto item.
func storeWithItem(t *testing.T, it metadata.Item) *metadata.Store {
	s := newTestStore(t)
	require.NoError(t, s.AppendAuto(it.URL, it))
	return s
}
