package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrPermanent marks a fetch failure the caller should never retry.
var ErrPermanent = fmt.Errorf("permanent archive failure")

// SnapshotterBin is the external single-file archiver shelled out to for
// non-PDF pages.
var SnapshotterBin = "single-file"

// errorPageStrings are scanned for in a completed HTML snapshot; a match
// means the "successful" fetch actually captured an error page.
var errorPageStrings = []string{
	"403 Forbidden",
	"404 Not Found",
	"Download Limit Exceeded",
	"Access Denied",
	"Instance has been rate limited",
}

// substackMarker fingerprints Substack pages, which break without
// JavaScript execution during the snapshot.
const substackMarker = "substackcdn.com"

// Options configures a single Fetch call.
type Options struct {
	RootDir   string        // repository root; snapshots are written under RootDir/doc/www/...
	CheckOnly bool          // do not fetch, report a miss
	Timeout   time.Duration // bounded-time fetcher deadline
}

// Fetch returns the local snapshot path for rawURL, fetching it if
// necessary. Concurrent calls for the same URL share one in-flight fetch.
func (s *Store) Fetch(ctx context.Context, rawURL string, opts Options) (string, error) {
	key := canonicalizeForHash(rawURL)

	onceIface, _ := s.inflight.LoadOrStore(key, &fetchState{})
	fs := onceIface.(*fetchState)

	fs.once.Do(func() {
		fs.path, fs.err = s.fetchOnce(ctx, rawURL, opts)
	})

	return fs.path, fs.err
}

type fetchState struct {
	once sync.Once
	path string
	err  error
}

func (s *Store) fetchOnce(ctx context.Context, rawURL string, opts Options) (string, error) {
	fragment := fragmentOf(rawURL)

	// Steps 1-2: an existing snapshot short-circuits the fetch.
	if rec, ok := s.Lookup(rawURL); ok && rec.State == StateSucceeded {
		return rec.LocalPath + fragment, nil
	}

	if opts.CheckOnly {
		return "", fmt.Errorf("archive miss for %s (--check mode)", rawURL)
	}

	fetchURL := rewriteArxivHost(rawURL)

	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(opts.Timeout))
	defer cancel()

	status, contentType, body, err := probeGet(ctx, fetchURL)
	if err != nil {
		s.put(Record{URL: rawURL, State: StatePendingRetry, LastAttempt: time.Now().UTC().Format(time.RFC3339)})
		return "", fmt.Errorf("probing %s: %w", rawURL, err)
	}
	if status == 403 || status == 404 {
		s.put(Record{URL: rawURL, State: StatePermanentFail})
		return "", fmt.Errorf("%w: %s returned status %d", ErrPermanent, rawURL, status)
	}

	var localPath string
	if isPDFResponse(contentType, fetchURL, body) {
		localPath, err = s.downloadPDF(rawURL, opts.RootDir, body)
	} else {
		localPath, err = s.snapshotHTML(ctx, rawURL, opts.RootDir, body)
	}
	if err != nil {
		s.put(Record{URL: rawURL, State: StatePermanentFail})
		return "", err
	}

	s.put(Record{URL: rawURL, State: StateSucceeded, LocalPath: localPath})
	return localPath + fragment, nil
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 60 * time.Second
	}
	return d
}

// rewriteArxivHost honors arxiv's robots policy.
func rewriteArxivHost(rawURL string) string {
	return strings.Replace(rawURL, "://arxiv.org", "://export.arxiv.org", 1)
}

// probeGet performs a full GET, never HEAD: some hosts lie on HEAD.
func probeGet(ctx context.Context, rawURL string) (status int, contentType string, body []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, "", nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, resp.Header.Get("Content-Type"), nil, err
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), b, nil
}

// isPDFResponse reports whether a response is a PDF, by MIME type, URL
// shape, or magic bytes.
func isPDFResponse(contentType, rawURL string, body []byte) bool {
	if strings.Contains(contentType, "application/pdf") {
		return true
	}
	if strings.HasSuffix(strings.ToLower(rawURL), ".pdf") {
		return true
	}
	return bytes.HasPrefix(body, []byte("%PDF-"))
}

// downloadPDF verifies the PDF magic bytes and moves the file into place.
func (s *Store) downloadPDF(rawURL, rootDir string, body []byte) (string, error) {
	if !bytes.HasPrefix(body, []byte("%PDF-")) {
		return "", fmt.Errorf("%w: %s did not return a valid PDF", ErrPermanent, rawURL)
	}

	relPath, err := SnapshotPath(rawURL, "pdf")
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(rootDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("creating archive dir: %w", err)
	}
	if err := os.WriteFile(fullPath, body, 0644); err != nil {
		return "", fmt.Errorf("writing pdf snapshot: %w", err)
	}

	return relPath, nil
}

// snapshotHTML shells out to the headless single-file archiver, then scans
// the result for known error-page strings. rawBody is the page's raw HTML
// from the initial probe, fingerprinted for the Substack marker to decide
// whether script execution must be kept.
func (s *Store) snapshotHTML(ctx context.Context, rawURL, rootDir string, rawBody []byte) (string, error) {
	relPath, err := SnapshotPath(rawURL, "html")
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(rootDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("creating archive dir: %w", err)
	}

	args := []string{rawURL, "--output", fullPath, "--compress-CSS", "true", "--browser-wait-until", "networkIdle0"}
	if requiresScripts(rawBody) {
		args = append(args, "--remove-scripts", "false")
	} else {
		args = append(args, "--remove-scripts", "true")
	}

	cmd := exec.CommandContext(ctx, SnapshotterBin, args...)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: single-file snapshot of %s failed: %v", ErrPermanent, rawURL, err)
	}

	snapshot, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("reading snapshot: %w", err)
	}
	if page := string(snapshot); containsErrorPage(page) {
		os.Remove(fullPath)
		return "", fmt.Errorf("%w: %s snapshot contains an error page", ErrPermanent, rawURL)
	}

	return relPath, nil
}

// requiresScripts fingerprints the Substack marker in the page's raw
// HTML: Substack pages break without JavaScript execution during the
// snapshot.
func requiresScripts(rawBody []byte) bool {
	return bytes.Contains(rawBody, []byte(substackMarker))
}

func containsErrorPage(page string) bool {
	for _, s := range errorPageStrings {
		if strings.Contains(page, s) {
			return true
		}
	}
	return false
}
