package main

import (
	"github.com/spf13/cobra"

	"github.com/gwern/ssgen/internal/config"
)

var configRootFlag string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
	configInitCmd.Flags().StringVar(&configRootFlag, "root", "", "repository root (defaults to $SSGEN_ROOT or cwd)")
	configShowCmd.Flags().StringVar(&configRootFlag, "root", "", "repository root (defaults to $SSGEN_ROOT or cwd)")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the .ssgen repository configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init <site-root>",
	Short: "Initialize a .ssgen repository rooted at the given site directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireRepoRoot(configRootFlag)
		if err != nil {
			return err
		}

		if err := config.ValidateSiteRoot(args[0]); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}

		cfg := &config.Config{SiteRoot: config.ExpandPath(args[0]), OutputDir: "_site"}
		if err := config.EnsureRepository(root); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if err := cfg.Save(root); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}

		return emit(StatusResponse{Status: "initialized", Path: config.SSGenPath(root)}, func() {
			outputHuman("initialized %s\n", config.SSGenPath(root))
		})
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved repository configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := requireRepoRoot(configRootFlag)
		if err != nil {
			return err
		}

		cfg, err := config.Load(root)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}

		return emit(cfg, func() {
			outputHuman("site_root: %s\noutput_dir: %s\nworkers: %d\nwikipedia_mode: %s\n",
				cfg.SiteRoot, cfg.OutputDir, cfg.Workers, cfg.WikipediaMode)
		})
	},
}

// StatusResponse is a generic response for commands that report a status
// and an optional path, matching cmd/bp/output.go's StatusResponse.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}
