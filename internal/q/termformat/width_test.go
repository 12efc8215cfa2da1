package termformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextWidthWithANSICodesPlain(t *testing.T) {
	require.Equal(t, 11, TextWidthWithANSICodes("hello world"))
}

func TestTextWidthWithANSICodesSGR(t *testing.T) {
	colored := ANSICyan + "世a" + ANSIReset + "!"
	require.Equal(t, 4, TextWidthWithANSICodes(colored))
}

func TestTextWidthWithANSICodesOSCBELTerminator(t *testing.T) {
	hyperlink := "\x1b]8;;https://example.com\x07link\x1b]8;;\x07"
	require.Equal(t, 4, TextWidthWithANSICodes(hyperlink))
}

func TestTextWidthWithANSICodesOSCSTTerminator(t *testing.T) {
	hyperlink := "\x1b]8;;https://example.com\x1b\\label\x1b]8;;\x1b\\"
	require.Equal(t, 5, TextWidthWithANSICodes(hyperlink))
}

func TestTextWidthWithANSICodesDefaultEscape(t *testing.T) {
	require.Equal(t, 2, TextWidthWithANSICodes("ok\x1bc"))
}

func TestTextWidthWithANSICodesEmpty(t *testing.T) {
	assert.Equal(t, 0, TextWidthWithANSICodes(""))
}

func TestFitWidth(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "pads short text", in: "ab", width: 4, want: "ab  "},
		{name: "exact fit untouched", in: "abcd", width: 4, want: "abcd"},
		{name: "truncates with ellipsis", in: "abcdef", width: 4, want: "abc…"},
		{name: "wide cluster at boundary is padded", in: "a世界", width: 3, want: "a… "},
		{name: "combining marks stay with base", in: "ábc", width: 2, want: "á…"},
		{name: "width one", in: "abc", width: 1, want: "…"},
		{name: "zero width", in: "abc", width: 0, want: ""},
		{name: "empty pads", in: "", width: 3, want: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitWidth(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.width, TextWidthWithANSICodes(got))
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	assert.Equal(t, "ab", TruncateWidth("abc", 2))
	assert.Equal(t, "", TruncateWidth("世", 1))
	assert.Equal(t, "世", TruncateWidth("世界", 3))
	assert.Equal(t, "", TruncateWidth("abc", 0))
}
