package metadata

import "strings"

// SitePrefix is the site's own absolute URL prefix, stripped to a leading
// "/" during canonicalization.
var SitePrefix = "https://gwern.net"

// Canonicalize strips the site's own absolute URL prefix to a leading
// "/"; strips a leading "./"; fragments are kept for display but are not
// part of the returned lookup key unless the caller wants them via
// CanonicalizeKeepFragment.
func Canonicalize(raw string) string {
	p := raw
	if strings.HasPrefix(p, SitePrefix) {
		p = "/" + strings.TrimPrefix(strings.TrimPrefix(p, SitePrefix), "/")
	}
	p = strings.TrimPrefix(p, "./")
	if i := strings.IndexByte(p, '#'); i >= 0 {
		p = p[:i]
	}
	return p
}

// CanonicalizeKeepFragment applies the same rules as Canonicalize but
// retains any "#fragment" suffix, for display purposes: fragments are
// considered part of the Path for display.
func CanonicalizeKeepFragment(raw string) string {
	p := raw
	if strings.HasPrefix(p, SitePrefix) {
		p = "/" + strings.TrimPrefix(strings.TrimPrefix(p, SitePrefix), "/")
	}
	p = strings.TrimPrefix(p, "./")
	return p
}
