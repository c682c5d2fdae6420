package main

import (
	"github.com/spf13/cobra"

	"github.com/gwern/ssgen/internal/config"
	"github.com/gwern/ssgen/internal/export"
	"github.com/gwern/ssgen/internal/metadata"
)

var (
	exportRootFlag string
	exportOutFlag  string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportBibtexCmd)
	exportCmd.PersistentFlags().StringVar(&exportRootFlag, "root", "", "repository root (defaults to $SSGEN_ROOT or cwd)")
	exportBibtexCmd.Flags().StringVar(&exportOutFlag, "out", "", "write to this file instead of stdout")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the annotation store to other formats",
}

var exportBibtexCmd = &cobra.Command{
	Use:   "bibtex",
	Short: "Export every non-negative-cache annotation as BibTeX",
	Long: `bibtex converts the curated and auto annotation stores to BibTeX
entries, skipping negative-cache entries that were never successfully
scraped. With --out pointing at an existing .bib file, it parses that
file's entries and appends only the ones not already present (matched by
DOI, falling back to citation key) instead of overwriting the file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireRepoRoot(exportRootFlag)
		if err != nil {
			return err
		}

		store, err := metadata.Load(config.CuratedPath(root), config.AutoPath(root))
		if err != nil {
			exitWithError(ExitInvariantError, "%v", err)
		}

		items := make([]metadata.Item, 0, store.Len())
		for _, it := range store.All() {
			items = append(items, it)
		}

		if exportOutFlag == "" {
			bib := export.ToBibTeXList(items)
			return emit(ExportResponse{Entries: len(items), BibTeX: bib}, func() {
				outputHuman("%s", bib)
			})
		}

		idx, err := export.ParseBibTeXFile(exportOutFlag)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		newItems := export.FilterNew(items, idx)
		bib := export.ToBibTeXList(newItems)

		if err := export.AppendToBibFile(exportOutFlag, bib); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		return emit(StatusResponse{Status: "written", Path: exportOutFlag}, func() {
			outputHuman("appended %d new entries to %s\n", len(newItems), exportOutFlag)
		})
	},
}

// ExportResponse wraps BibTeX output for JSON mode, since a multi-entry
// .bib blob on its own is not a JSON value.
type ExportResponse struct {
	Entries int    `json:"entries"`
	BibTeX  string `json:"bibtex"`
}
