package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Layered resolves runtime settings from, in priority order: CLI flags (bound
// by the caller through BindWorkers), environment variables prefixed
// SSGEN_, the repository's config.jsonc, then these defaults, using viper's
// flags>env>file>defaults precedence.
type Layered struct {
	v *viper.Viper
}

// NewLayered constructs a Layered resolver rooted at an ssgen repository.
// root may be empty if no repository has been found yet; in that case only
// environment variables and defaults are consulted.
func NewLayered(root string) (*Layered, error) {
	v := viper.New()
	v.SetEnvPrefix("SSGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("workers", 0) // 0 => runtime.NumCPU()
	v.SetDefault("wikipedia_mode", "client")
	v.SetDefault("archive.max_new_per_build", 200)
	v.SetDefault("archive.timeout_seconds", 960) // ~16 min
	v.SetDefault("scraper.user_agent", "ssgen-scraper/1.0 (+https://example.invalid/bot)")
	v.SetDefault("scraper.arxiv_rate_seconds", 15)
	v.SetDefault("scraper.crossref_rate_seconds", 1)
	v.SetDefault("scraper.crossref_mailto", "")

	if root != "" {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(SSGenPath(root))
		if raw, err := stdJSONBytes(ConfigPath(root)); err == nil {
			if err := v.MergeConfig(strings.NewReader(string(raw))); err != nil {
				return nil, err
			}
		}
	}

	return &Layered{v: v}, nil
}

// Workers returns the configured worker-pool size, or 0 meaning "use runtime.NumCPU()".
func (l *Layered) Workers() int { return l.v.GetInt("workers") }

// WikipediaMode returns "client" (do not annotate) or "store" (fetch via REST).
func (l *Layered) WikipediaMode() string { return l.v.GetString("wikipedia_mode") }

// ArchiveMaxNewPerBuild returns the per-build cap on freshly created archive snapshots.
func (l *Layered) ArchiveMaxNewPerBuild() int { return l.v.GetInt("archive.max_new_per_build") }

// ArchiveTimeoutSeconds returns the hard wall-clock timeout for a single snapshot fetch.
func (l *Layered) ArchiveTimeoutSeconds() int { return l.v.GetInt("archive.timeout_seconds") }

// ScraperUserAgent returns the User-Agent string scrapers should identify as.
func (l *Layered) ScraperUserAgent() string { return l.v.GetString("scraper.user_agent") }

// ArxivRateSeconds returns the polite delay between arXiv API calls.
func (l *Layered) ArxivRateSeconds() int { return l.v.GetInt("scraper.arxiv_rate_seconds") }

// CrossrefRateSeconds returns the polite delay between Crossref API calls.
func (l *Layered) CrossrefRateSeconds() int { return l.v.GetInt("scraper.crossref_rate_seconds") }

// CrossrefMailto returns the contact email appended to Crossref requests
// (their "polite pool" convention), empty if unset.
func (l *Layered) CrossrefMailto() string { return l.v.GetString("scraper.crossref_mailto") }

// BindWorkers overrides the resolved worker count, e.g. from a --workers flag.
func (l *Layered) BindWorkers(n int) {
	if n > 0 {
		l.v.Set("workers", n)
	}
}

// stdJSONBytes reads a HUJSON config file and standardizes it to strict JSON,
// so viper.MergeConfig (which only understands strict JSON) can parse it.
func stdJSONBytes(path string) ([]byte, error) {
	return loadStandardized(path)
}
