package termformat

import "github.com/codalotl/splitdiff/internal/q/uni"

// TextWidthWithANSICodes returns how many terminal cells str occupies when printed, ignoring ANSI escape sequences (ex: color codes don't contribute to the width).
func TextWidthWithANSICodes(str string) int {
	width := 0
	segmentStart := 0

	for i := 0; i < len(str); {
		if str[i] != '\x1b' {
			i++
			continue
		}
		if segmentStart < i {
			width += uni.TextWidth(str[segmentStart:i], nil)
		}
		i += max(ansiSequenceLength(str[i:]), 1)
		segmentStart = i
	}

	if segmentStart < len(str) {
		width += uni.TextWidth(str[segmentStart:], nil)
	}
	return width
}

// ansiSequenceLength returns the byte length of the escape sequence at the start of s, or 0 if s does not start with a complete one.
func ansiSequenceLength(s string) int {
	if len(s) == 0 || s[0] != '\x1b' {
		return 0
	}
	if len(s) == 1 {
		return 1
	}

	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e { // CSI final byte
				return i + 1
			}
		}
		return 0
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == '\a' || (s[i] == '\\' && s[i-1] == '\x1b') { // BEL or ST terminator
				return i + 1
			}
		}
		return 0
	case 'P', '^', '_':
		for i := 2; i < len(s); i++ {
			if s[i] == '\\' && s[i-1] == '\x1b' {
				return i + 1
			}
		}
		return 0
	default:
		return 2 // ESC followed by a single-character control sequence
	}
}
