// Package rewrite implements the 13 ordered AST rewrite passes, each a
// visitor over a single *ast.Document. The passes perform no network or
// file I/O themselves: annotation creation (pass 4), archiving (pass 7)
// and the image check (pass 12) call hooks injected through Context, and
// the pipeline driver implements those hooks with scraper, archive and
// file access that runs while the pass is walking the document.
package rewrite

import (
	"fmt"

	"github.com/gwern/ssgen/internal/archive"
	"github.com/gwern/ssgen/internal/ast"
	"github.com/gwern/ssgen/internal/metadata"
)

// Document is an alias kept local to this package so pass signatures read
// as rewrite.Document rather than ast.Document throughout; it is the same
// type.
type Document = ast.Document

// Pass is one stage of the pipeline: a function from a document plus
// shared, read-mostly context to a possibly-mutated document or a fatal
// error. Each pass mutates doc in place and returns it for convenience.
type Pass func(doc *Document, ctx *Context) (*Document, error)

// Context carries everything a pass may consult. No pass mutates it; Run
// only fills in a zero MinAbstractLenForMark with the default. The
// horizontal-rule cycle counter is a local of ApplyTypography, threaded
// explicitly rather than stored here or as a package-level counter.
type Context struct {
	Metadata *metadata.Store
	Archive  *archive.Store

	// SelfBaseURL is the site's own absolute URL prefix. The pipeline
	// driver sets it; no pass reads it.
	SelfBaseURL string

	// KnownPhrases maps an exact phrase to the URL the auto-linker links
	// it to. The pipeline driver does not fill it in, so in a build run
	// through internal/pipeline the auto-linker has no phrases and links
	// nothing.
	KnownPhrases map[string]string

	// Interwiki resolves a shorthand prefix (e.g. "W" in "[text](!W)") to
	// a URL template containing one "%s" for the page title.
	Interwiki map[string]string

	// LiveDomains is the set of domains known to permit iframe popups
	// (the link-live classifier, pass 10).
	LiveDomains map[string]bool

	// PageTags, PageHasBacklinks, PageHasSimilar let the page-link walker
	// (pass 9) propagate page-level metadata onto every link whose target
	// is itself a known page (keyed by Path).
	PageTags         map[string][]string
	PageHasBacklinks map[string]bool
	PageHasSimilar   map[string]bool

	// IsInvertible reports whether the image at target should receive the
	// invertible-auto class (pass 12). Injected so the rewrite package
	// performs no I/O itself; the pipeline driver's implementation reads a
	// site-local image from disk when called and reports false for remote
	// targets without fetching them.
	IsInvertible func(target string) (bool, error)

	// ArchiveFetch resolves target (an external URL) to a local snapshot
	// path; ArchiveLocalLinks (pass 7) calls it once per external link.
	// ArchiveLocalLinks ignores any error it returns and leaves that link
	// unannotated, so an archive failure never becomes a rewrite-pass
	// error.
	ArchiveFetch func(target string) (localPath string, err error)

	// EnsureAnnotation is called once per distinct link target encountered
	// by CreateAnnotations (pass 4). The driver's implementation is
	// expected to check Metadata first and only dispatch a scraper (and
	// append to the auto file) on a miss; it must be safe to call
	// concurrently across links, serializing its own writes internally.
	// A permanent scrape failure is not an error here: it is recorded as
	// a negative-cache Item by the driver and this pass proceeds.
	EnsureAnnotation func(target string) error

	// MinAbstractLenForMark is the minimum annotation abstract length, in
	// characters, for pass 5 to mark a link; links to shorter abstracts
	// are left unmarked.
	MinAbstractLenForMark int
}

// DefaultMinAbstractLenForMark is the default abstract-length threshold
// for the has-annotation marker.
const DefaultMinAbstractLenForMark = 180

// Passes is the fixed, load-bearing pass order. Do not reorder: later
// passes depend on state earlier passes establish (e.g. the has-annotation
// marker, pass 5, depends on annotation creation, pass 4).
var Passes = []Pass{
	AutoLink,
	ResolveInterwiki,
	CheckFootnotes,
	CreateAnnotations,
	MarkHasAnnotation,
	AdjustInflation,
	ArchiveLocalLinks,
	ClassifyLocalLinks,
	WalkPageLinks,
	ApplyTypography,
	SelfLinkHeaders,
	MarkInvertibleImages,
	NormalizeLooseBlocks,
}

// Run executes every pass in order against doc, aborting on the first
// fatal error: rewrite-pass errors on data are fatal and abort the build.
func Run(doc *Document, ctx *Context) error {
	if ctx.MinAbstractLenForMark == 0 {
		ctx.MinAbstractLenForMark = DefaultMinAbstractLenForMark
	}
	for i, pass := range Passes {
		if _, err := pass(doc, ctx); err != nil {
			return fmt.Errorf("rewrite pass %d: %w", i+1, err)
		}
	}
	return nil
}
