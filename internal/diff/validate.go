package diff

import "fmt"

// validate checks the Result invariants and returns an error on the first violation.
func (r Result) validate() error {
	left, right := r.Left, r.Right
	if len(left) != len(right) {
		return fmt.Errorf("len(Left)=%d != len(Right)=%d", len(left), len(right))
	}

	leftLine, rightLine := 0, 0
	for i := range left {
		l, rr := left[i], right[i]
		if l.RawIndex != i || rr.RawIndex != i {
			return fmt.Errorf("row[%d]: RawIndex mismatch (left=%d right=%d)", i, l.RawIndex, rr.RawIndex)
		}
		switch {
		case l.Kind == RowEmpty && rr.Kind == RowEmpty:
			return fmt.Errorf("row[%d]: both sides empty", i)
		case (l.Kind == RowEqual) != (rr.Kind == RowEqual):
			return fmt.Errorf("row[%d]: equal rows out of sync (left=%s right=%s)", i, l.Kind, rr.Kind)
		case l.Kind == RowEmpty && rr.Kind != RowInsert:
			return fmt.Errorf("row[%d]: left empty requires right insert, got %s", i, rr.Kind)
		case rr.Kind == RowEmpty && l.Kind != RowDelete:
			return fmt.Errorf("row[%d]: right empty requires left delete, got %s", i, l.Kind)
		case l.Kind == RowInsert || rr.Kind == RowDelete || l.Kind == RowCollapsed || rr.Kind == RowCollapsed:
			return fmt.Errorf("row[%d]: invalid kinds (left=%s right=%s)", i, l.Kind, rr.Kind)
		}

		if l.Kind == RowEmpty {
			if l.Line != 0 || l.Text != "" {
				return fmt.Errorf("row[%d]: left empty row has line or text", i)
			}
		} else {
			leftLine++
			if l.Line != leftLine {
				return fmt.Errorf("row[%d]: left line %d, want %d", i, l.Line, leftLine)
			}
		}
		if rr.Kind == RowEmpty {
			if rr.Line != 0 || rr.Text != "" {
				return fmt.Errorf("row[%d]: right empty row has line or text", i)
			}
		} else {
			rightLine++
			if rr.Line != rightLine {
				return fmt.Errorf("row[%d]: right line %d, want %d", i, rr.Line, rightLine)
			}
		}
	}

	if len(r.RawToHunk) != len(left) {
		return fmt.Errorf("len(RawToHunk)=%d != %d", len(r.RawToHunk), len(left))
	}
	prevEnd := -2
	for hi, h := range r.Hunks {
		if h.Start > h.End || h.Start < 0 || h.End >= len(left) {
			return fmt.Errorf("hunk[%d]: bad span [%d, %d]", hi, h.Start, h.End)
		}
		if h.Start <= prevEnd+1 {
			return fmt.Errorf("hunk[%d]: overlaps or touches previous hunk", hi)
		}
		prevEnd = h.End
		for i := h.Start; i <= h.End; i++ {
			if bothEqual(left, right, i) {
				return fmt.Errorf("hunk[%d]: covers equal row %d", hi, i)
			}
		}
		if h.ID != hunkID(h.LeftLine, h.RightLine, h.Start, h.End) {
			return fmt.Errorf("hunk[%d]: id %q does not match span", hi, h.ID)
		}
	}
	for i := range left {
		covered := r.RawToHunk[i] != ""
		if covered == bothEqual(left, right, i) {
			return fmt.Errorf("row[%d]: hunk coverage %v disagrees with row kinds", i, covered)
		}
	}
	return nil
}

// validate checks the Display invariants against the aligned rows it was planned from.
func (d Display) validate(left, right []Row) error {
	if len(d.Left) != len(d.Right) {
		return fmt.Errorf("len(Left)=%d != len(Right)=%d", len(d.Left), len(d.Right))
	}
	if len(d.RawToDisplay) != len(left) {
		return fmt.Errorf("len(RawToDisplay)=%d != %d", len(d.RawToDisplay), len(left))
	}
	for raw, di := range d.RawToDisplay {
		if di < 0 || di >= len(d.Left) {
			return fmt.Errorf("raw[%d]: display index %d out of range", raw, di)
		}
		row := d.Left[di]
		if row.Kind == RowCollapsed {
			if raw < row.RawStart || raw > row.RawEnd {
				return fmt.Errorf("raw[%d]: maps to collapsed row covering [%d, %d]", raw, row.RawStart, row.RawEnd)
			}
			continue
		}
		if row.RawIndex != raw || d.Right[di].RawIndex != raw {
			return fmt.Errorf("raw[%d]: maps to display row with raw index %d", raw, row.RawIndex)
		}
		if row != left[raw] || d.Right[di] != right[raw] {
			return fmt.Errorf("raw[%d]: display row differs from aligned row", raw)
		}
	}
	return nil
}
