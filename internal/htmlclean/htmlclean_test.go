package htmlclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCleanJATSMarkup verifies JATS tag stripping and inequality-sign
// normalization together on a realistic abstract fragment.
func TestCleanJATSMarkup(t *testing.T) {
	in := "<jats:p>p&lt;.05, N=10x2</jats:p>"
	want := "<p><em>p</em> < 0.05, <em>N</em> = 10×2</p>"
	assert.Equal(t, want, Clean(in))
}

// TestCleanIdempotent checks Clean(Clean(x)) == Clean(x).
func TestCleanIdempotent(t *testing.T) {
	cases := []string{
		"<jats:p>p&lt;.05, N=10x2</jats:p>",
		"<jats:title>Methods</jats:title><jats:p>text</jats:p>",
		"<h3>Methods</h3>\n<p>we did X</p>",
		"some abstract (JEL D82, G14) continues",
		"r=0.5, n=10, p<.05",
		"the 1st and 2nd trials",
		"range 2x3 to 4x5",
		"This article is protected by copyright. All rights reserved. Actual text.",
		"math \\(x + y\\) follows",
		"plain text with no rules applying",
	}
	for _, c := range cases {
		once := Clean(c)
		twice := Clean(once)
		assert.Equal(t, once, twice, "input=%q once=%q twice=%q", c, once, twice)
	}
}

func TestCleanJATSTagTranslation(t *testing.T) {
	assert.Equal(t, "<p>hi</p>", Clean("<jats:p>hi</jats:p>"))
	assert.Equal(t, "<strong>Methods</strong>", Clean("<jats:title>Methods</jats:title>"))
}

func TestCleanSectionHeadingColonization(t *testing.T) {
	got := Clean("<h3>Methods</h3>\n<p>we tested this</p>")
	assert.Equal(t, "<p><strong>Methods</strong>: we tested this</p>", got)
}

func TestCleanStripsJELTag(t *testing.T) {
	got := Clean("An abstract about trade (JEL F13, F14) with more text.")
	assert.NotContains(t, got, "JEL")
}

func TestCleanTrimsResult(t *testing.T) {
	assert.Equal(t, "hello", Clean("   hello   "))
}

func TestCleanSuperscriptOrdinals(t *testing.T) {
	assert.Equal(t, "the 1<sup>st</sup> trial", Clean("the 1st trial"))
}

func TestCleanMultiplicationSign(t *testing.T) {
	assert.Equal(t, "a 3×4 grid", Clean("a 3x4 grid"))
}
