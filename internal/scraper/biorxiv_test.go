package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMetaTags(t *testing.T) {
	body := []byte(`<html><head>
<meta name="DC.Title" content="A Great Paper">
<meta name="DC.Contributor" content="Alice Smith">
<meta name="DC.Contributor" content="Bob Jones">
<meta name="citation_doi" content="10.1/xyz">
</head><body></body></html>`)

	meta := extractMetaTags(body)
	assert.Equal(t, []string{"A Great Paper"}, meta["DC.Title"])
	assert.Equal(t, []string{"Alice Smith", "Bob Jones"}, meta["DC.Contributor"])
	assert.Equal(t, []string{"10.1/xyz"}, meta["citation_doi"])
}

func TestFirstOrEmpty(t *testing.T) {
	assert.Equal(t, "", firstOrEmpty(nil))
	assert.Equal(t, "x", firstOrEmpty([]string{"x", "y"}))
}
