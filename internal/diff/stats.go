package diff

import "fmt"

// Stats summarizes a Result.
type Stats struct {
	Total   int // max(left line count, right line count)
	Added   int // RowInsert rows
	Removed int // RowDelete rows
}

// String formats s as "Lines: <total> · +<added> added · -<removed> removed".
func (s Stats) String() string {
	return fmt.Sprintf("Lines: %d · +%d added · -%d removed", s.Total, s.Added, s.Removed)
}

// Stats counts lines in r.
func (r Result) Stats() Stats {
	var s Stats
	leftLines, rightLines := 0, 0
	for i := range r.Left {
		switch r.Left[i].Kind {
		case RowDelete:
			s.Removed++
			leftLines++
		case RowEqual:
			leftLines++
		}
		switch r.Right[i].Kind {
		case RowInsert:
			s.Added++
			rightLines++
		case RowEqual:
			rightLines++
		}
	}
	s.Total = max(leftLines, rightLines)
	return s
}

// HasChanges reports whether leftText and rightText differ under opts without running the matcher: both are tokenized and compared line by line by comparison key. It agrees
// with ComputeDiff(leftText, rightText, opts).HasChanges().
func HasChanges(leftText, rightText string, opts Options) bool {
	if leftText == "" && rightText == "" {
		return false
	}
	left := contentLines(leftText)
	right := contentLines(rightText)
	if len(left) != len(right) {
		return true
	}
	for i := range left {
		if CompareKey(left[i], opts.IgnoreWhitespace) != CompareKey(right[i], opts.IgnoreWhitespace) {
			return true
		}
	}
	return false
}
