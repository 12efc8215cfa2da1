package diff

import (
	"strings"
	"unicode"
)

const defaultEOL = "\n"

// Normalize converts "\r\n" and bare "\r" line endings to "\n".
func Normalize(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", defaultEOL)
	return strings.ReplaceAll(text, "\r", defaultEOL)
}

// Tokenize normalizes text and splits it into lines. Lines do not include the separator. Text with N separators always yields N+1 lines, so "" yields [""] and a trailing
// separator yields a trailing "" line.
func Tokenize(text string) []string {
	return strings.Split(Normalize(text), defaultEOL)
}

// CompareKey returns the key used to compare line for equality. If ignoreWhitespace, all Unicode whitespace is removed; otherwise line is returned unchanged.
func CompareKey(line string, ignoreWhitespace bool) string {
	if !ignoreWhitespace {
		return line
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
}
