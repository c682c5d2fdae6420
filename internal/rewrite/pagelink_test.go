package rewrite

import (
	"testing"

	"github.com/gwern/ssgen/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkPageLinksPropagatesMetadata(t *testing.T) {
	doc := &Document{Blocks: []ast.Block{
		&ast.Paragraph{Inlines: []ast.Inline{
			&ast.Link{Target: "/doc/page", Inlines: []ast.Inline{&ast.Str{Text: "x"}}},
		}},
	}}
	ctx := &Context{
		PageHasBacklinks: map[string]bool{"/doc/page": true},
		PageHasSimilar:   map[string]bool{"/doc/page": true},
		PageTags:         map[string][]string{"/doc/page": {"ai", "statistics"}},
	}

	_, err := WalkPageLinks(doc, ctx)
	require.NoError(t, err)

	link := doc.Blocks[0].(*ast.Paragraph).Inlines[0].(*ast.Link)
	assert.True(t, link.Attr.HasClass(hasBacklinksClass))
	assert.True(t, link.Attr.HasClass(hasSimilarClass))
	assert.Equal(t, "ai,statistics", link.Attr.Pairs[tagsPair])
}

func TestWalkPageLinksNoMetadataNoOp(t *testing.T) {
	doc := &Document{Blocks: []ast.Block{
		&ast.Paragraph{Inlines: []ast.Inline{
			&ast.Link{Target: "/doc/other", Inlines: []ast.Inline{&ast.Str{Text: "x"}}},
		}},
	}}
	_, err := WalkPageLinks(doc, &Context{})
	require.NoError(t, err)

	link := doc.Blocks[0].(*ast.Paragraph).Inlines[0].(*ast.Link)
	assert.Empty(t, link.Attr.Classes)
}
