package diff

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// FindMatches returns, in ascending order, the display indices where either side's text contains query case-insensitively. query is trimmed first; an empty query matches
// nothing. Collapsed rows are never matched, whatever their label says.
func FindMatches(left, right []Row, query string) []int {
	q := foldQuery(query)
	if q == "" {
		return nil
	}

	var rows []int
	for i := range left {
		if left[i].Kind == RowCollapsed || (i < len(right) && right[i].Kind == RowCollapsed) {
			continue
		}
		if containsFolded(left[i].Text, q) || (i < len(right) && containsFolded(right[i].Text, q)) {
			rows = append(rows, i)
		}
	}
	return rows
}

// Search is a caller-held search state over a Display.
type Search struct {
	Query  string
	Rows   []int // Display indices with a match (see FindMatches).
	Active int   // Index into Rows; -1 when there are no matches.
}

// UpdateSearch recomputes matches of query over d.
//
// If keepActive is false, the first match becomes active. If keepActive is true, prev.Active is kept as long as it still indexes a match; otherwise the first match becomes
// active. With no matches Active is -1.
func UpdateSearch(prev Search, d Display, query string, keepActive bool) Search {
	s := Search{
		Query: query,
		Rows:  FindMatches(d.Left, d.Right, query),
	}
	switch {
	case len(s.Rows) == 0:
		s.Active = -1
	case keepActive && prev.Active >= 0 && prev.Active < len(s.Rows):
		s.Active = prev.Active
	default:
		s.Active = 0
	}
	return s
}

// Next moves to the next match, wrapping around. It does nothing without matches.
func (s *Search) Next() {
	if len(s.Rows) == 0 {
		return
	}
	s.Active = (s.Active + 1) % len(s.Rows)
}

// Prev moves to the previous match, wrapping around. It does nothing without matches.
func (s *Search) Prev() {
	if len(s.Rows) == 0 {
		return
	}
	s.Active = (s.Active - 1 + len(s.Rows)) % len(s.Rows)
}

// ActiveRow returns the display index of the active match, or -1.
func (s Search) ActiveRow() int {
	if s.Active < 0 || s.Active >= len(s.Rows) {
		return -1
	}
	return s.Rows[s.Active]
}

// MatchSpans returns the [start, end) byte offsets in text of every non-overlapping case-insensitive occurrence of query. Offsets refer to text itself, not a lower-cased copy.
func MatchSpans(text, query string) [][2]int {
	q := foldQuery(query)
	if q == "" || text == "" {
		return nil
	}

	// Lower-casing can change byte lengths, so compare rune by rune against text's own offsets.
	var spans [][2]int
	for i := 0; i < len(text); {
		if end, ok := hasFoldedPrefix(text[i:], q); ok {
			spans = append(spans, [2]int{i, i + end})
			i += end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return spans
}

func foldQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func containsFolded(text, q string) bool {
	return strings.Contains(strings.ToLower(text), q)
}

// hasFoldedPrefix reports whether s starts with the already lower-cased q, comparing lower-cased runes, and returns the byte length of the matched prefix of s.
func hasFoldedPrefix(s, q string) (int, bool) {
	i := 0
	for _, qr := range q {
		if i >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.ToLower(r) != qr {
			return 0, false
		}
		i += size
	}
	return i, true
}
