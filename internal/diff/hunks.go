package diff

import (
	"fmt"
	"strconv"
)

// Hunk is a maximal contiguous span of aligned rows where at least one side is not RowEqual.
type Hunk struct {
	ID        string // Deterministic from the span; see hunkID.
	Start     int    // First raw index (inclusive).
	End       int    // Last raw index (inclusive).
	LeftLine  int    // First left line number in the span; 0 if the left side has only RowEmpty rows here.
	RightLine int    // First right line number in the span; 0 if the right side has only RowEmpty rows here.
}

// Len is the number of raw rows h spans.
func (h Hunk) Len() int {
	return h.End - h.Start + 1
}

// Contains reports whether raw index i falls within h.
func (h Hunk) Contains(i int) bool {
	return i >= h.Start && i <= h.End
}

// BuildHunks scans aligned rows and returns hunks in ascending raw-index order. A hunk extends while either side is non-equal and ends exactly where both sides are equal
// again, so no two hunks touch. left and right must have equal lengths.
func BuildHunks(left, right []Row) []Hunk {
	var hunks []Hunk
	i := 0
	for i < len(left) {
		if bothEqual(left, right, i) {
			i++
			continue
		}

		start := i
		for i < len(left) && !bothEqual(left, right, i) {
			i++
		}
		end := i - 1

		leftLine := firstLineNumber(left, start, end)
		rightLine := firstLineNumber(right, start, end)
		hunks = append(hunks, Hunk{
			ID:        hunkID(leftLine, rightLine, start, end),
			Start:     start,
			End:       end,
			LeftLine:  leftLine,
			RightLine: rightLine,
		})
	}
	return hunks
}

// HunkMap returns a slice of length n mapping raw index to the id of the hunk covering it, or "" if none.
func HunkMap(n int, hunks []Hunk) []string {
	out := make([]string, n)
	for _, h := range hunks {
		for i := h.Start; i <= h.End && i < n; i++ {
			out[i] = h.ID
		}
	}
	return out
}

// hunkID formats "h-<leftLine>-<rightLine>-<start>-<end>", with "n" for a missing line number. Identical spans always produce identical ids.
func hunkID(leftLine, rightLine, start, end int) string {
	return fmt.Sprintf("h-%s-%s-%d-%d", lineOrN(leftLine), lineOrN(rightLine), start, end)
}

func lineOrN(line int) string {
	if line <= 0 {
		return "n"
	}
	return strconv.Itoa(line)
}

func firstLineNumber(rows []Row, start, end int) int {
	for i := start; i <= end; i++ {
		if rows[i].HasLine() {
			return rows[i].Line
		}
	}
	return 0
}

func bothEqual(left, right []Row, i int) bool {
	return left[i].Kind == RowEqual && right[i].Kind == RowEqual
}
