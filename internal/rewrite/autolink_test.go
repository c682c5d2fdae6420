package rewrite

import (
	"testing"

	"github.com/gwern/ssgen/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoLinkReplacesKnownPhrase(t *testing.T) {
	doc := &Document{Blocks: []ast.Block{
		&ast.Paragraph{Inlines: []ast.Inline{&ast.Str{Text: "see Attention Is All You Need for details"}}},
	}}
	ctx := &Context{KnownPhrases: map[string]string{"Attention Is All You Need": "https://arxiv.org/abs/1706.03762"}}

	_, err := AutoLink(doc, ctx)
	require.NoError(t, err)

	var links []*ast.Link
	ast.WalkLinks(doc.Blocks, func(l *ast.Link) { links = append(links, l) })
	require.Len(t, links, 1)
	assert.Equal(t, "https://arxiv.org/abs/1706.03762", links[0].Target)
	assert.Equal(t, "Attention Is All You Need", ast.CollectText(links[0].Inlines))
}

func TestAutoLinkNoMatchLeavesTextUntouched(t *testing.T) {
	doc := &Document{Blocks: []ast.Block{
		&ast.Paragraph{Inlines: []ast.Inline{&ast.Str{Text: "nothing to link here"}}},
	}}
	ctx := &Context{KnownPhrases: map[string]string{"Unrelated Phrase": "https://example.com"}}

	_, err := AutoLink(doc, ctx)
	require.NoError(t, err)

	str, ok := doc.Blocks[0].(*ast.Paragraph).Inlines[0].(*ast.Str)
	require.True(t, ok)
	assert.Equal(t, "nothing to link here", str.Text)
}

func TestAutoLinkNoPhrasesIsNoop(t *testing.T) {
	doc := &Document{Blocks: []ast.Block{
		&ast.Paragraph{Inlines: []ast.Inline{&ast.Str{Text: "anything"}}},
	}}
	_, err := AutoLink(doc, &Context{})
	require.NoError(t, err)
}
