// Package pipeline implements the build driver: the top-level orchestration
// that loads metadata, dispatches scrapers for unseen links, runs the
// 13-pass rewrite over every document, and writes annotation fragments for
// every eligible result. Concurrency is bounded by a worker pool sized from
// internal/config.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gwern/ssgen/internal/archive"
	"github.com/gwern/ssgen/internal/ast"
	"github.com/gwern/ssgen/internal/config"
	"github.com/gwern/ssgen/internal/dispatcher"
	"github.com/gwern/ssgen/internal/fragment"
	"github.com/gwern/ssgen/internal/imagecache"
	"github.com/gwern/ssgen/internal/metadata"
	"github.com/gwern/ssgen/internal/rewrite"
)

// Driver bundles everything one build needs: the loaded metadata store, the
// archive index, the image-invertibility cache, the scraper clients, and the
// resolved configuration. One Driver serves an entire build; its hooks are
// shared, mutex-guarded state across every worker.
type Driver struct {
	Metadata    *metadata.Store
	Archive     *archive.Store
	Images      *imagecache.Cache
	Clients     *dispatcher.Clients
	Config      *config.Layered
	RootDir     string // repository root, for archive snapshot and fragment paths
	SelfBaseURL string

	Out io.Writer // progress output; defaults to io.Discard if nil

	newArchived atomic.Int64 // count of snapshots freshly created this build, capped by Config.ArchiveMaxNewPerBuild
}

// Result summarizes one build's outcome, for the CLI's final report.
type Result struct {
	DocumentsProcessed int
	FragmentsWritten   int
	FragmentsUnchanged int
	Errors             []DocumentError
}

// DocumentError pairs a document path with the fatal rewrite error it hit;
// a per-document rewrite error aborts that document, not the build.
type DocumentError struct {
	Path string
	Err  error
}

func (d *Driver) logf(format string, args ...any) {
	out := d.Out
	if out == nil {
		out = io.Discard
	}
	fmt.Fprintf(out, format+"\n", args...)
}

// buildRewriteContext wires the pure rewrite.Context's injected hooks to
// this driver's live stores, keeping internal/rewrite itself free of
// network and filesystem access.
func (d *Driver) buildRewriteContext(ctx context.Context) *rewrite.Context {
	return &rewrite.Context{
		Metadata:              d.Metadata,
		Archive:               d.Archive,
		SelfBaseURL:           d.SelfBaseURL,
		MinAbstractLenForMark: rewrite.DefaultMinAbstractLenForMark,
		EnsureAnnotation:      d.ensureAnnotation(ctx),
		ArchiveFetch:          d.archiveFetch(ctx),
		IsInvertible:          d.isInvertible(ctx),
	}
}

// ensureAnnotation scrapes target if the metadata store doesn't already
// have it, caching a negative entry on permanent failure and leaving
// temporary failures unrecorded so the next build retries them.
func (d *Driver) ensureAnnotation(ctx context.Context) func(string) error {
	return func(target string) error {
		if _, ok := d.Metadata.Lookup(target); ok {
			return nil
		}

		item, outcome, err := dispatcher.Dispatch(ctx, d.Clients, target)
		switch outcome {
		case dispatcher.OutcomeItem:
			return d.Metadata.AppendAuto(target, item)
		case dispatcher.OutcomePermanent:
			d.logf("annotation: permanent failure for %s: %v", target, err)
			return d.Metadata.AppendAuto(target, metadata.Item{URL: target}) // negative cache
		case dispatcher.OutcomeTemporary:
			d.logf("annotation: temporary failure for %s: %v", target, err)
			return nil // do not cache, retry next build
		default:
			return fmt.Errorf("unknown dispatch outcome for %s", target)
		}
	}
}

// archiveFetch wraps archive.Store.Fetch, enforcing the per-build cap on
// freshly created snapshots: archiving is best-effort and bounded, never
// build-fatal. Once the cap is hit, further misses are reported as
// errors so the caller (internal/rewrite/archivelinks.go) skips annotating
// the link rather than blocking on a fetch.
func (d *Driver) archiveFetch(ctx context.Context) func(string) (string, error) {
	max := int64(d.Config.ArchiveMaxNewPerBuild())
	timeout := secondsToDuration(d.Config.ArchiveTimeoutSeconds())

	return func(target string) (string, error) {
		if _, ok := d.Archive.Lookup(target); !ok {
			if max > 0 && d.newArchived.Load() >= max {
				return "", fmt.Errorf("archive budget exhausted, skipping %s", target)
			}
			d.newArchived.Add(1)
		}

		path, err := d.Archive.Fetch(ctx, target, archive.Options{RootDir: d.RootDir, Timeout: timeout})
		if err != nil {
			d.logf("archive: %v", err)
		}
		return path, err
	}
}

// isInvertible wraps the image-invertibility cache, reading the image's
// current bytes from disk under RootDir. Only locally-stored images are
// checked; remote images are never fetched just to sample luminance.
func (d *Driver) isInvertible(ctx context.Context) func(string) (bool, error) {
	return func(target string) (bool, error) {
		content, err := readLocalImage(d.RootDir, target)
		if err != nil {
			return false, err
		}
		if content == nil {
			return false, nil // not a local file, skip rather than fail the build
		}
		return d.Images.IsInvertible(content)
	}
}

// ProcessDocuments runs the full rewrite pipeline and fragment write over
// every document, fanned out across a bounded worker pool sharing one
// Metadata/Archive state. A per-document rewrite error is recorded in
// Result.Errors and does not abort the rest of the build.
func (d *Driver) ProcessDocuments(ctx context.Context, docs []*ast.Document) (Result, error) {
	workers := d.Config.Workers()
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(docs) && len(docs) > 0 {
		workers = len(docs)
	}
	if workers < 1 {
		workers = 1
	}

	rctx := d.buildRewriteContext(ctx)

	jobs := make(chan *ast.Document)
	var mu sync.Mutex
	result := Result{}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				d.processOne(doc, rctx, &mu, &result)
			}
		}()
	}

	for _, doc := range docs {
		jobs <- doc
	}
	close(jobs)
	wg.Wait()

	return result, nil
}

func (d *Driver) processOne(doc *ast.Document, rctx *rewrite.Context, mu *sync.Mutex, result *Result) {
	if err := rewrite.Run(doc, rctx); err != nil {
		mu.Lock()
		result.Errors = append(result.Errors, DocumentError{Path: doc.Path, Err: err})
		result.DocumentsProcessed++
		mu.Unlock()
		d.logf("rewrite: %s: %v", doc.Path, err)
		return
	}

	written, unchanged := d.writeFragments(doc)

	mu.Lock()
	result.DocumentsProcessed++
	result.FragmentsWritten += written
	result.FragmentsUnchanged += unchanged
	mu.Unlock()
}

// writeFragments walks every linked target in doc and writes an annotation
// fragment for each one whose abstract clears the eligibility floor.
func (d *Driver) writeFragments(doc *ast.Document) (written, unchanged int) {
	seen := map[string]bool{}
	ast.WalkLinks(doc.Blocks, func(l *ast.Link) {
		if seen[l.Target] {
			return
		}
		seen[l.Target] = true

		item, ok := d.Metadata.Lookup(l.Target)
		if !ok || !fragment.Eligible(item) {
			return
		}

		abstractHTML := fragment.RewriteRelativeAnchors(item.Abstract, l.Target)
		_, changed, truncated, err := fragment.Write(d.RootDir, item, l.Attr.ID, abstractHTML)
		if err != nil {
			d.logf("fragment: %s: %v", l.Target, err)
			return
		}
		if truncated {
			d.logf("fragment: %s: filename truncated", l.Target)
		}
		if changed {
			written++
		} else {
			unchanged++
		}
	})
	return written, unchanged
}
