package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAuthorSpacedInitials(t *testing.T) {
	assert.Equal(t, "A. Smith", NormalizeAuthor("A.Smith"))
	assert.Equal(t, "A. B. Smith", NormalizeAuthor("A.B. Smith"))
}

func TestNormalizeAuthorBareInitial(t *testing.T) {
	assert.Equal(t, "A. Smith", NormalizeAuthor("A Smith"))
}

func TestNormalizeAuthorSeparators(t *testing.T) {
	assert.Equal(t, "Alice Smith, Bob Jones", NormalizeAuthor("Alice Smith and Bob Jones"))
	assert.Equal(t, "Alice Smith, Bob Jones", NormalizeAuthor("Alice Smith, & Bob Jones"))
	assert.Equal(t, "Alice Smith, Bob Jones", NormalizeAuthor("Alice Smith, and Bob Jones"))
}

func TestNormalizeAuthorUnaffected(t *testing.T) {
	assert.Equal(t, "Alice Smith, Bob Jones", NormalizeAuthor("Alice Smith, Bob Jones"))
}
