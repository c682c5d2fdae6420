package main

import (
	"github.com/spf13/cobra"

	"github.com/gwern/ssgen/internal/archive"
	"github.com/gwern/ssgen/internal/config"
)

var archiveRootFlag string

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveStatusCmd)
	archiveCmd.PersistentFlags().StringVar(&archiveRootFlag, "root", "", "repository root (defaults to $SSGEN_ROOT or cwd)")
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect the link-archive store",
}

// ArchiveStatusResponse summarizes the archive store's JSONL log by state.
type ArchiveStatusResponse struct {
	Total  int               `json:"total"`
	ByState map[string]int   `json:"by_state"`
}

var archiveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report archive snapshot counts by state",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireRepoRoot(archiveRootFlag)
		if err != nil {
			return err
		}

		store, err := archive.LoadStore(config.ArchiveJSONLPath(root))
		if err != nil {
			exitWithError(ExitArchiveError, "%v", err)
		}

		counts := map[string]int{}
		for _, r := range store.All() {
			counts[string(r.State)]++
		}

		resp := ArchiveStatusResponse{Total: len(store.All()), ByState: counts}
		return emit(resp, func() {
			outputHuman("total: %d\n", resp.Total)
			for state, count := range resp.ByState {
				outputHuman("  %s: %d\n", state, count)
			}
		})
	},
}
