package diff

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_TieBreakPrefersDelete(t *testing.T) {
	// Both "keep a" and "keep b" are longest alignments. Backtracking from the end prefers dropping the left line, so "a" is kept.
	ops := Match([]string{"a", "b"}, []string{"b", "a"}, nil)
	assert.Equal(t, []EditOp{
		{Kind: OpInsert, Right: "b"},
		{Kind: OpEqual, Left: "a", Right: "a"},
		{Kind: OpDelete, Left: "b"},
	}, ops)
}

func TestMatch_TieBreakShapesAlignment(t *testing.T) {
	res := ComputeDiff("a\nb", "b\na", Options{})
	require.NoError(t, res.validate())

	assert.Equal(t, []RowKind{RowEmpty, RowEqual, RowDelete}, kinds(res.Left))
	assert.Equal(t, []RowKind{RowInsert, RowEqual, RowEmpty}, kinds(res.Right))
	require.Len(t, res.Hunks, 2)
	assert.Equal(t, "h-n-1-0-0", res.Hunks[0].ID)
	assert.Equal(t, "h-2-n-2-2", res.Hunks[1].ID)
}

func TestMatch_Empty(t *testing.T) {
	assert.Empty(t, Match(nil, nil, nil))
	assert.Equal(t, []EditOp{{Kind: OpInsert, Right: "x"}}, Match(nil, []string{"x"}, nil))
	assert.Equal(t, []EditOp{{Kind: OpDelete, Left: "x"}}, Match([]string{"x"}, nil, nil))
}

func TestMatch_KeyedEqualKeepsBothTexts(t *testing.T) {
	key := func(s string) string { return CompareKey(s, true) }
	ops := Match([]string{"a b"}, []string{"ab"}, key)
	assert.Equal(t, []EditOp{{Kind: OpEqual, Left: "a b", Right: "ab"}}, ops)
}

func TestMatch_MultilineKeysFallBack(t *testing.T) {
	// Keys containing "\n" can't be interned one-per-line, so the map path is used.
	ops := Match([]string{"x\ny", "z"}, []string{"z"}, nil)
	assert.Equal(t, []EditOp{
		{Kind: OpDelete, Left: "x\ny"},
		{Kind: OpEqual, Left: "z", Right: "z"},
	}, ops)
}

func TestInternKeys(t *testing.T) {
	a, b := internKeys([]string{"a", "b", "a"}, []string{"b", "c"}, nil)
	require.Len(t, a, 3)
	require.Len(t, b, 2)
	assert.Equal(t, a[0], a[2])
	assert.Equal(t, a[1], b[0])
	assert.NotEqual(t, a[0], a[1])
	assert.NotEqual(t, b[1], a[0])
	assert.NotEqual(t, b[1], a[1])

	ma, mb := internByMap([]string{"a", "b", "a"}, []string{"b", "c"})
	assert.Equal(t, []rune{0, 1, 0}, ma)
	assert.Equal(t, []rune{1, 2}, mb)
}

func TestInternKeys_ManyKeysUseMap(t *testing.T) {
	defer func(n int) { maxRuneInternKeys = n }(maxRuneInternKeys)
	maxRuneInternKeys = 4

	a, b := internKeys([]string{"a", "b", "a"}, []string{"b", "c"}, nil)
	assert.Equal(t, []rune{0, 1, 0}, a)
	assert.Equal(t, []rune{1, 2}, b)
}

func TestComputeDiff_ManyDistinctLines(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a 1.2M line input")
	}
	const n = 1_200_000
	lines := make([]string, n)
	for i := range lines {
		lines[i] = strconv.Itoa(i)
	}

	var res Result
	require.NotPanics(t, func() {
		res = ComputeDiff(strings.Join(lines, "\n"), "", Options{})
	})
	require.Len(t, res.Left, n)
	require.Len(t, res.Hunks, 1)
	assert.Equal(t, Stats{Total: n, Removed: n}, res.Stats())
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{""}, Tokenize(""))
	assert.Equal(t, []string{"a", ""}, Tokenize("a\n"))
	assert.Equal(t, []string{"a", "b", "c", ""}, Tokenize("a\r\nb\rc\n"))
}

func TestCompareKey(t *testing.T) {
	assert.Equal(t, " a\tb ", CompareKey(" a\tb ", false))
	assert.Equal(t, "ab", CompareKey(" a\tb ", true))
	assert.Equal(t, "ab", CompareKey("a b　", true))
}
