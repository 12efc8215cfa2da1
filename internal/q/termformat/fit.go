package termformat

import (
	"strings"

	"github.com/codalotl/splitdiff/internal/q/uni"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// FitWidth returns s truncated and/or right-padded with spaces so it occupies exactly width cells. s must be plain text: no ANSI codes and no newlines (see Sanitize).
//
// Truncation is grapheme-cluster-aware and ends with Ellipsis when at least one cell is available for it. A wide cluster that would straddle the boundary is dropped and
// replaced by padding. If width <= 0, FitWidth returns "".
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := uni.TextWidth(s, nil)
	if w <= width {
		return s + strings.Repeat(" ", width-w)
	}
	prefix := TruncateWidth(s, width-1)
	out := prefix + Ellipsis
	return out + strings.Repeat(" ", width-uni.TextWidth(out, nil))
}

// TruncateWidth returns the longest prefix of s, on grapheme cluster boundaries, that fits in width cells.
func TruncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	used := 0
	iter := uni.NewGraphemeIterator(s, nil)
	for iter.Next() {
		cw := iter.TextWidth()
		if used+cw > width {
			return s[:iter.Start()]
		}
		used += cw
	}
	return s
}
