package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gwern/ssgen/internal/conflict"
	"github.com/gwern/ssgen/internal/config"
	"github.com/gwern/ssgen/internal/metadata"
)

var metadataRootFlag string

func init() {
	rootCmd.AddCommand(metadataCmd)
	metadataCmd.AddCommand(metadataInfoCmd, metadataDiffCmd)
	metadataCmd.PersistentFlags().StringVar(&metadataRootFlag, "root", "", "repository root (defaults to $SSGEN_ROOT or cwd)")
}

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Inspect and compare the annotation store",
}

var metadataInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Report annotation store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireRepoRoot(metadataRootFlag)
		if err != nil {
			return err
		}

		store, err := metadata.Load(config.CuratedPath(root), config.AutoPath(root))
		if err != nil {
			exitWithError(ExitInvariantError, "%v", err)
		}

		stats := store.Stats()
		return emit(stats, func() {
			outputHuman("total: %d\nnegative caches: %d\n", stats.Total, stats.NegativeCaches)
		})
	},
}

var metadataDiffCmd = &cobra.Command{
	Use:   "diff <proposed-curated.yaml>",
	Short: "Compare the curated annotation YAML on disk against a proposed replacement",
	Long: `diff matches entries by URL first (the store's unique key), then by
title for entries whose URL changed underneath a rename, and reports
additions, removals, and changed entries.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireRepoRoot(metadataRootFlag)
		if err != nil {
			return err
		}

		oldItems, err := readCuratedYAML(config.CuratedPath(root))
		if err != nil {
			exitWithError(ExitInvariantError, "%v", err)
		}
		newItems, err := readCuratedYAML(args[0])
		if err != nil {
			exitWithError(ExitInvariantError, "%v", err)
		}

		result := conflict.DiffItems(oldItems, newItems)
		return emit(result, func() {
			outputHuman("added: %d\nremoved: %d\nchanged: %d\nunchanged: %d\n",
				len(result.NewOnly), len(result.OldOnly), countChanged(result.Matches), len(result.Matches)-countChanged(result.Matches))
			for _, it := range result.NewOnly {
				outputHuman("  + %s\n", it.URL)
			}
			for _, it := range result.OldOnly {
				outputHuman("  - %s\n", it.URL)
			}
			for _, m := range result.Matches {
				if m.Changed {
					outputHuman("  ~ %s (matched by %s)\n", m.New.URL, m.MatchedBy)
				}
			}
		})
	},
}

func countChanged(matches []conflict.ItemMatch) int {
	n := 0
	for _, m := range matches {
		if m.Changed {
			n++
		}
	}
	return n
}

// curatedRecord mirrors internal/metadata's unexported on-disk record
// shape, duplicated here since a proposed replacement file is read
// standalone, outside of metadata.Load's invariant checking.
type curatedRecord struct {
	URL      string `yaml:"url"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Date     string `yaml:"date"`
	DOI      string `yaml:"doi"`
	Abstract string `yaml:"abstract"`
}

// readCuratedYAML reads a standalone curated-shaped YAML file for
// comparison purposes; unlike metadata.Load it does not enforce the
// curated store's fatal invariants, since a proposed replacement is
// expected to be checked separately before being promoted.
func readCuratedYAML(path string) ([]metadata.Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []curatedRecord
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	items := make([]metadata.Item, 0, len(records))
	for _, r := range records {
		items = append(items, metadata.Item{
			URL:      r.URL,
			Title:    r.Title,
			Author:   r.Author,
			Date:     r.Date,
			DOI:      r.DOI,
			Abstract: r.Abstract,
		})
	}
	return items, nil
}
