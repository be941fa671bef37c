package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTruncateTextRespectsLimit(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "hello", tp.TruncateText("hello", 10))
	assert.Equal(t, "hello", tp.TruncateText("hello world", 5))
	assert.Equal(t, "hello", tp.TruncateText("hello", 0), "zero means no limit")
}

func TestTruncateTextNeverSplitsRunes(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	// "नमस्ते" is 18 bytes; cutting at 10 lands mid-rune.
	truncated := tp.TruncateText("नमस्ते", 10)
	assert.True(t, utf8.ValidString(truncated))
	assert.LessOrEqual(t, len(truncated), 10)
}

func TestSanitizeUTF8DropsInvalidBytes(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "clean", tp.SanitizeUTF8("clean"))

	dirty := "bad\xffbyte"
	sanitized := tp.SanitizeUTF8(dirty)
	assert.True(t, utf8.ValidString(sanitized))
	assert.Equal(t, "badbyte", sanitized)
}

func TestProcessText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	long := strings.Repeat("a", 100) + "\xff"
	processed := tp.ProcessText(long, 50)
	assert.Equal(t, strings.Repeat("a", 50), processed)
}
