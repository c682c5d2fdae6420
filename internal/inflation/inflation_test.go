package inflation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustKnownYear(t *testing.T) {
	adjusted, ok := Adjust(100, 2000)
	assert.True(t, ok)
	assert.Greater(t, adjusted, 100.0)
}

func TestAdjustUnknownYear(t *testing.T) {
	_, ok := Adjust(100, 1901)
	assert.False(t, ok)
}

func TestFormatEquivalent(t *testing.T) {
	s, ok := FormatEquivalent(100, 1980)
	assert.True(t, ok)
	assert.Contains(t, s, "2025")
}

func TestHasYear(t *testing.T) {
	assert.True(t, HasYear(1980))
	assert.False(t, HasYear(1066))
}
