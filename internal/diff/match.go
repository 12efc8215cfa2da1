package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// OpKind is the kind of an EditOp.
type OpKind int

// Edit operation kinds.
const (
	OpEqual OpKind = iota
	OpDelete
	OpInsert
)

// EditOp is one step of an edit script from left lines to right lines.
//
// Operations:
//   - OpEqual: Left and Right are both set (they may differ in whitespace when matched under a whitespace-insensitive key).
//   - OpDelete: Left is set, Right is "".
//   - OpInsert: Right is set, Left is "".
type EditOp struct {
	Kind  OpKind
	Left  string
	Right string
}

// Match computes an edit script from left to right using a longest-common-subsequence table over key(line). If key is nil, lines are compared as-is.
//
// Concatenating the Left of OpEqual/OpDelete ops reproduces left exactly, and concatenating the Right of OpEqual/OpInsert ops reproduces right exactly.
//
// When backtracking hits a tie between dropping a left line and dropping a right line, the delete is chosen. This tie-break determines hunk shape on inputs with several
// equally long alignments and must not change.
//
// Time and space are O(len(left)·len(right)).
func Match(left, right []string, key func(string) string) []EditOp {
	a, b := internKeys(left, right, key)
	n, m := len(a), len(b)

	// lcs[i][j] is the LCS length of a[:i] and b[:j]. One backing array keeps the table to a single allocation.
	width := m + 1
	cells := make([]int32, (n+1)*width)
	at := func(i, j int) int32 { return cells[i*width+j] }

	for i := 1; i <= n; i++ {
		row := cells[i*width : (i+1)*width]
		prev := cells[(i-1)*width : i*width]
		for j := 1; j <= m; j++ {
			switch {
			case a[i-1] == b[j-1]:
				row[j] = prev[j-1] + 1
			case prev[j] >= row[j-1]:
				row[j] = prev[j]
			default:
				row[j] = row[j-1]
			}
		}
	}

	ops := make([]EditOp, 0, n+m)
	i, j := n, m
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			ops = append(ops, EditOp{Kind: OpEqual, Left: left[i-1], Right: right[j-1]})
			i--
			j--
		case at(i-1, j) >= at(i, j-1):
			ops = append(ops, EditOp{Kind: OpDelete, Left: left[i-1]})
			i--
		default:
			ops = append(ops, EditOp{Kind: OpInsert, Right: right[j-1]})
			j--
		}
	}
	for ; i > 0; i-- {
		ops = append(ops, EditOp{Kind: OpDelete, Left: left[i-1]})
	}
	for ; j > 0; j-- {
		ops = append(ops, EditOp{Kind: OpInsert, Right: right[j-1]})
	}

	for lo, hi := 0, len(ops)-1; lo < hi; lo, hi = lo+1, hi-1 {
		ops[lo], ops[hi] = ops[hi], ops[lo]
	}
	return ops
}

// maxRuneInternKeys bounds the lines handed to DiffLinesToRunes, below the number of runes it can encode.
var maxRuneInternKeys = 1_000_000

// internKeys maps each line's comparison key to a rune such that two lines get the same rune iff their keys are equal.
//
// Tokenized lines never contain "\n" and CompareKey only removes runes, so each "\n"-terminated key is exactly one line to DiffLinesToRunes. Callers of Match may pass
// arbitrary strings, though; if any key spans lines, the rune counts won't line up and a map is used instead.
func internKeys(left, right []string, key func(string) string) ([]rune, []rune) {
	if key == nil {
		key = func(s string) string { return s }
	}
	leftKeys := make([]string, len(left))
	for i, line := range left {
		leftKeys[i] = key(line)
	}
	rightKeys := make([]string, len(right))
	for i, line := range right {
		rightKeys[i] = key(line)
	}

	// DiffLinesToRunes panics once it hands out more distinct ids than it can encode as valid runes.
	if len(leftKeys)+len(rightKeys) > maxRuneInternKeys {
		return internByMap(leftKeys, rightKeys)
	}

	join := func(keys []string) string {
		if len(keys) == 0 {
			return ""
		}
		return strings.Join(keys, defaultEOL) + defaultEOL
	}

	dmp := diffmatchpatch.New()
	a, b, _ := dmp.DiffLinesToRunes(join(leftKeys), join(rightKeys))
	if len(a) == len(leftKeys) && len(b) == len(rightKeys) {
		return a, b
	}
	return internByMap(leftKeys, rightKeys)
}

func internByMap(leftKeys, rightKeys []string) ([]rune, []rune) {
	ids := make(map[string]rune, len(leftKeys)+len(rightKeys))
	intern := func(keys []string) []rune {
		out := make([]rune, len(keys))
		for i, k := range keys {
			id, ok := ids[k]
			if !ok {
				id = rune(len(ids))
				ids[k] = id
			}
			out[i] = id
		}
		return out
	}
	return intern(leftKeys), intern(rightKeys)
}
