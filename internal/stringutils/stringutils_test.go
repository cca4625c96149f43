package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndentString(t *testing.T) {
	assert.Equal(t, "  a\n  b", IndentString("a\nb", "  "))
	assert.Equal(t, "  a\n  ", IndentString("a\n", "  "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab...", Truncate("abcdefgh", 5))
	assert.Equal(t, "ab", Truncate("abcdefgh", 2))
}
