package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRepository(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(SSGenPath(root), 0755))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, err := FindRepository(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestFindRepositoryNotFound(t *testing.T) {
	_, err := FindRepository(t.TempDir())
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(SSGenPath(root), 0755))

	cfg := &Config{
		SiteRoot:  "/corpus",
		OutputDir: "/out",
		Workers:   4,
	}
	require.NoError(t, cfg.Save(root))

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "/corpus", loaded.SiteRoot)
	assert.Equal(t, "/out", loaded.OutputDir)
	assert.Equal(t, 4, loaded.Workers)
	assert.Equal(t, "client", loaded.WikipediaMode) // default filled in on Load
}

func TestLoadHUJSONComments(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(SSGenPath(root), 0755))

	jsonc := `{
		// site root, human-edited
		"site_root": "/corpus",
		"output_dir": "/out",
		"workers": 8, // trailing comma below is legal HUJSON
	}`
	require.NoError(t, os.WriteFile(ConfigPath(root), []byte(jsonc), 0644))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "/corpus", cfg.SiteRoot)
	assert.Equal(t, 8, cfg.Workers)
}

func TestValidateWikipediaMode(t *testing.T) {
	assert.NoError(t, ValidateWikipediaMode(""))
	assert.NoError(t, ValidateWikipediaMode("client"))
	assert.NoError(t, ValidateWikipediaMode("store"))
	assert.Error(t, ValidateWikipediaMode("bogus"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "foo"), ExpandPath("~/foo"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
}

func TestLayeredDefaults(t *testing.T) {
	l, err := NewLayered("")
	require.NoError(t, err)
	assert.Equal(t, 0, l.Workers())
	assert.Equal(t, "client", l.WikipediaMode())
	assert.Equal(t, 15, l.ArxivRateSeconds())
	assert.Equal(t, 1, l.CrossrefRateSeconds())
}

func TestLayeredBindWorkers(t *testing.T) {
	l, err := NewLayered("")
	require.NoError(t, err)
	l.BindWorkers(16)
	assert.Equal(t, 16, l.Workers())
}
