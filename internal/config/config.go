// Package config handles site-repository configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config represents repository configuration stored in .ssgen/config.jsonc.
// The file is HUJSON (JSON with comments and trailing commas) so a human can
// annotate their settings; it is parsed into strict JSON before unmarshaling.
type Config struct {
	SiteRoot     string `json:"site_root"`               // Absolute path to the document corpus
	OutputDir    string `json:"output_dir"`               // Where decorated HTML is emitted
	ArchiveDir   string `json:"archive_dir,omitempty"`     // doc/www/ snapshot root, defaults under SiteRoot
	Workers      int    `json:"workers,omitempty"`         // Worker pool size, 0 = runtime.NumCPU()
	WikipediaMode string `json:"wikipedia_mode,omitempty"` // "client" (do not annotate) or "store" (fetch via REST)
}

const (
	SSGenDir        = ".ssgen"
	ConfigFile      = "config.jsonc"
	CuratedFile     = "annotations-curated.yaml"
	AutoFile        = "annotations-auto.yaml"
	ArchiveJSONL    = "archive.jsonl"
	ArchiveDBFile   = "archive.db"
	FragmentDir     = "metadata/annotation"
	CacheDir        = "cache"
)

// ValidWikipediaModes lists the supported wikipedia_mode values.
var ValidWikipediaModes = []string{"client", "store"}

// SSGenPath returns the path to the .ssgen directory from a root path.
func SSGenPath(root string) string {
	return filepath.Join(root, SSGenDir)
}

// ConfigPath returns the path to config.jsonc from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, SSGenDir, ConfigFile)
}

// CuratedPath returns the path to the curated annotation YAML from a root path.
func CuratedPath(root string) string {
	return filepath.Join(root, SSGenDir, CuratedFile)
}

// AutoPath returns the path to the auto (append-only) annotation YAML.
func AutoPath(root string) string {
	return filepath.Join(root, SSGenDir, AutoFile)
}

// ArchiveJSONLPath returns the path to the archive store's JSONL log.
func ArchiveJSONLPath(root string) string {
	return filepath.Join(root, SSGenDir, ArchiveJSONL)
}

// ArchiveDBPath returns the path to the archive store's ephemeral SQLite index.
func ArchiveDBPath(root string) string {
	return filepath.Join(root, SSGenDir, CacheDir, ArchiveDBFile)
}

// FragmentDirPath returns the directory annotation fragments are written into.
func FragmentDirPath(root string) string {
	return filepath.Join(root, FragmentDir)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, SSGenDir, CacheDir)
}

// EnsureRepository creates the .ssgen directory and its cache subdirectory
// at root if they do not already exist.
func EnsureRepository(root string) error {
	if err := os.MkdirAll(SSGenPath(root), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", SSGenPath(root), err)
	}
	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", CachePath(root), err)
	}
	return nil
}

// IsRepository checks if the given path contains an ssgen repository.
func IsRepository(root string) bool {
	info, err := os.Stat(SSGenPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find an ssgen repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in an ssgen repository (no .ssgen directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
// The on-disk file may be HUJSON (comments, trailing commas); it is
// standardized to strict JSON before unmarshaling.
func Load(root string) (*Config, error) {
	raw, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing config (hujson): %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Workers == 0 {
		cfg.Workers = 0 // resolved by caller via runtime.NumCPU()
	}
	if cfg.WikipediaMode == "" {
		cfg.WikipediaMode = "client"
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
// The file is written as plain JSON; HUJSON is read-only sugar for humans.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidateSiteRoot checks that the site root path exists and is a directory.
func ValidateSiteRoot(path string) error {
	if path == "" {
		return nil // Empty is allowed (not yet configured)
	}

	expandedPath := ExpandPath(path)

	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", expandedPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", expandedPath)
	}

	return nil
}

// ValidateWikipediaMode checks that the mode value is one of ValidWikipediaModes.
func ValidateWikipediaMode(mode string) error {
	if mode == "" {
		return nil // Empty defaults to "client"
	}

	for _, valid := range ValidWikipediaModes {
		if mode == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid wikipedia_mode: %s (valid: %v)", mode, ValidWikipediaModes)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
