package textpatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectNewline(t *testing.T) {
	assert.Equal(t, LF, DetectNewline("a\nb\n"))
	assert.Equal(t, LF, DetectNewline(""))
	assert.Equal(t, LF, DetectNewline("a\rb"))
	assert.Equal(t, CRLF, DetectNewline("a\r\nb"))
	// 混合换行时只要出现 \r\n 即视为 CRLF
	assert.Equal(t, CRLF, DetectNewline("a\nb\r\nc\n"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a\r\nb\r\n", CRLF.Normalize("a\nb\r\n"))
	assert.Equal(t, "a\nb\n", LF.Normalize("a\r\nb\n"))
	assert.Equal(t, "a\nb", Auto.Normalize("a\r\nb"))
	assert.Equal(t, "no newline", CRLF.Normalize("no newline"))
}

func TestParseNewline(t *testing.T) {
	tests := map[string]Newline{
		"lf":      LF,
		" CRLF ":  CRLF,
		"Lf":      LF,
		"auto":    Auto,
		"":        Auto,
		"unknown": Auto,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseNewline(raw), raw)
	}
}

func TestNewlineString(t *testing.T) {
	assert.Equal(t, "lf", LF.String())
	assert.Equal(t, "crlf", CRLF.String())
	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "\r\n", CRLF.Sequence())
	assert.Equal(t, "\n", Auto.Sequence())
}
