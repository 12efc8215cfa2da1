package termformat

import (
	"strings"
	"unicode/utf8"

	"github.com/codalotl/splitdiff/internal/q/uni"
)

const hexDigits = "0123456789ABCDEF"

// Sanitize makes user text s safe to print to a terminal.
//   - If tabWidth > 0, each \t becomes the spaces needed to reach the next tab stop (a multiple of tabWidth cells, counted from the last \n). Otherwise \t is left as-is.
//   - \r and \n are left as-is.
//   - Other non-visible ASCII characters (<= 0x1F and 0x7F) become "\xXX" (ex: `\x1B` for ESC), so escape sequences in the input can't restyle the terminal.
//   - Invalid UTF-8 is replaced by U+FFFD.
func Sanitize(s string, tabWidth int) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	col := 0

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			r = '�'
		}

		switch {
		case r == '\t' && tabWidth > 0:
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case r == '\t':
			b.WriteRune(r)
		case r == '\n' || r == '\r':
			b.WriteRune(r)
			col = 0
		case r <= 0x7F && (r < 0x20 || r == 0x7F):
			b.WriteByte('\\')
			b.WriteByte('x')
			b.WriteByte(hexDigits[byte(r)>>4])
			b.WriteByte(hexDigits[byte(r)&0x0F])
			col += 4
		default:
			b.WriteRune(r)
			col += uni.RuneWidth(r, nil)
		}
	}

	return b.String()
}
