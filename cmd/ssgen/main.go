// Package main provides the ssgen CLI entry point: the pipeline driver
// exposed as a command rather than only a library, via a cobra root
// command with a persistent --human flag and SilenceUsage/SilenceErrors
// so RunE owns error reporting.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// humanOutput controls whether subcommands print human-readable text
// instead of JSON.
var humanOutput bool

func main() {
	// .env holds scraper credentials (SSGEN_CROSSREF_MAILTO, etc.); a
	// missing file is not an error, for local development convenience.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ssgen",
	Short: "Annotation-aware static site generator pipeline",
	Long: `ssgen builds a cross-linked, popup-enabled HTML site from a corpus of
lightly-marked-up documents plus a curated annotation database.

It loads the metadata store, dispatches scrapers for any link missing an
annotation, runs the document rewrite pipeline, and writes annotation
fragments for popup consumption.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// requireRepoRoot resolves the ssgen repository root from --root,
// $SSGEN_ROOT, or the working directory.
func requireRepoRoot(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if root := os.Getenv("SSGEN_ROOT"); root != "" {
		return root, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}
