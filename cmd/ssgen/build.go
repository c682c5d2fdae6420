package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gwern/ssgen/internal/archive"
	"github.com/gwern/ssgen/internal/ast"
	"github.com/gwern/ssgen/internal/config"
	"github.com/gwern/ssgen/internal/dispatcher"
	"github.com/gwern/ssgen/internal/docsrc"
	"github.com/gwern/ssgen/internal/imagecache"
	"github.com/gwern/ssgen/internal/metadata"
	"github.com/gwern/ssgen/internal/pipeline"
	"github.com/gwern/ssgen/internal/scraper"
)

var (
	buildRootFlag    string
	buildWorkersFlag int
)

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildRootFlag, "root", "", "repository root (defaults to $SSGEN_ROOT or cwd)")
	buildCmd.Flags().IntVar(&buildWorkersFlag, "workers", 0, "worker pool size (0 = runtime.NumCPU())")
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the full annotation and document transformation pipeline",
	Long: `build loads the metadata store, dispatches scrapers for any link
missing an annotation, runs the 13-pass document rewrite over every
document under the configured site root, and writes annotation fragments
for every eligible result.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	root, err := requireRepoRoot(buildRootFlag)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	layered, err := config.NewLayered(root)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	layered.BindWorkers(buildWorkersFlag)

	store, err := metadata.Load(config.CuratedPath(root), config.AutoPath(root))
	if err != nil {
		exitWithError(ExitInvariantError, "%v", err)
	}

	archiveStore, err := archive.LoadStore(config.ArchiveJSONLPath(root))
	if err != nil {
		exitWithError(ExitArchiveError, "%v", err)
	}
	if db, err := archive.OpenDB(config.ArchiveDBPath(root)); err == nil {
		_ = db.RebuildFromJSONL(archiveStore.All())
		defer db.Close()
	}

	images, err := imagecache.Load(filepath.Join(config.CachePath(root), "images.json"))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	clients := buildClients(layered)

	siteRoot := config.ExpandPath(cfg.SiteRoot)
	if siteRoot == "" {
		siteRoot = root
	}
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "_site"
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(root, outputDir)
	}

	docs, err := loadDocuments(siteRoot)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	driver := &pipeline.Driver{
		Metadata: store,
		Archive:  archiveStore,
		Images:   images,
		Clients:  clients,
		Config:   layered,
		RootDir:  root,
		Out:      os.Stderr,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	result, err := driver.ProcessDocuments(ctx, docs)
	if err != nil {
		exitWithError(ExitRewriteError, "%v", err)
	}

	if err := writeDocuments(outputDir, siteRoot, docs); err != nil {
		exitWithError(ExitError, "writing output: %v", err)
	}

	if err := images.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: saving image cache: %v\n", err)
	}
	if err := archive.WriteJSONL(config.ArchiveJSONLPath(root), archiveStore.All()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: persisting archive store: %v\n", err)
	}

	return emit(result, func() {
		outputHuman("documents processed: %d\nfragments written: %d\nfragments unchanged: %d\nerrors: %d\n",
			result.DocumentsProcessed, result.FragmentsWritten, result.FragmentsUnchanged, len(result.Errors))
		for _, e := range result.Errors {
			outputHuman("  %s: %v\n", e.Path, e.Err)
		}
	})
}

// buildClients constructs one rate-limited client per remote scraper
// source, sized from the layered config's politeness intervals (arxiv
// ~15s, crossref ~1s).
func buildClients(l *config.Layered) *dispatcher.Clients {
	ua := l.ScraperUserAgent()
	return &dispatcher.Clients{
		Arxiv:          scraper.NewRateLimitedClient(time.Duration(l.ArxivRateSeconds())*time.Second, ua),
		Biorxiv:        scraper.NewRateLimitedClient(time.Second, ua),
		Crossref:       scraper.NewRateLimitedClient(time.Duration(l.CrossrefRateSeconds())*time.Second, ua),
		Wikipedia:      scraper.NewRateLimitedClient(time.Second, ua),
		WikipediaMode:  l.WikipediaMode(),
		CrossrefMailto: l.CrossrefMailto(),
	}
}

// loadDocuments walks siteRoot for .html source documents and parses each
// into the typed AST (internal/docsrc), skipping hidden (dot-prefixed)
// directories such as .ssgen and any directory named _site; an output
// directory under any other name is not skipped.
func loadDocuments(siteRoot string) ([]*ast.Document, error) {
	var docs []*ast.Document
	err := filepath.Walk(siteRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") || info.Name() == "_site" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".html") {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(siteRoot, path)
		if err != nil {
			return err
		}
		docPath := "/" + strings.TrimSuffix(filepath.ToSlash(rel), ".html")

		doc, err := docsrc.Parse(string(raw), docPath)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	return docs, err
}

// writeDocuments serializes every decorated document back to HTML under
// outputDir, mirroring each document's Path relative to siteRoot, after
// the rewrite pipeline has finished.
func writeDocuments(outputDir, siteRoot string, docs []*ast.Document) error {
	for _, doc := range docs {
		html, err := docsrc.Render(doc)
		if err != nil {
			return err
		}

		destPath := filepath.Join(outputDir, strings.TrimPrefix(doc.Path, "/")+".html")
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(destPath, []byte(html), 0644); err != nil {
			return err
		}
	}
	return nil
}
