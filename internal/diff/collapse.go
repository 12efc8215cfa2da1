package diff

import "fmt"

// CollapseContext is how many unchanged rows stay visible on each side of a fold.
const CollapseContext = 2

// CollapseMin is the shortest run of unchanged rows that is folded.
const CollapseMin = 2*CollapseContext + 4

// DisplayOptions control PlanDisplay. The zero value shows every row.
type DisplayOptions struct {
	Collapse bool            // Fold long unchanged runs.
	Expanded map[string]bool // Block ids the caller has unfolded. Read only; may be nil.
}

// Display is the row projection handed to a renderer.
type Display struct {
	Left  []Row // Same length as Right.
	Right []Row

	// RawToDisplay maps each raw index to its display index. Hidden raw indices map to their collapsed row.
	RawToDisplay []int
}

// Len is the number of display rows.
func (d Display) Len() int {
	return len(d.Left)
}

// Blocks returns the block ids of all collapsed rows, in display order.
func (d Display) Blocks() []string {
	var ids []string
	for _, r := range d.Left {
		if r.Kind == RowCollapsed {
			ids = append(ids, r.BlockID)
		}
	}
	return ids
}

// HunkDisplayIndex returns the display index of the first row of h, or -1 if h lies outside the display.
func (d Display) HunkDisplayIndex(h Hunk) int {
	if h.Start < 0 || h.Start >= len(d.RawToDisplay) {
		return -1
	}
	return d.RawToDisplay[h.Start]
}

// PlanDisplay projects aligned rows into display rows.
//
// Rows that are not equal on both sides pass through. A maximal run of both-equal rows is folded when opts.Collapse is set, the run has at least CollapseMin rows, and its block
// id ("block-<start>-<end>" over the run's raw span) is not in opts.Expanded. A folded run shows its first and last CollapseContext rows with one RowCollapsed row in between;
// the right side gets its own copy of that row. Re-planning with a block id added to opts.Expanded always yields the fully expanded run.
func PlanDisplay(left, right []Row, opts DisplayOptions) Display {
	d := Display{
		Left:         make([]Row, 0, len(left)),
		Right:        make([]Row, 0, len(right)),
		RawToDisplay: make([]int, len(left)),
	}

	pass := func(k int) {
		d.RawToDisplay[k] = len(d.Left)
		d.Left = append(d.Left, passRow(left[k], k))
		d.Right = append(d.Right, passRow(right[k], k))
	}

	i := 0
	for i < len(left) {
		if !opts.Collapse || !bothEqual(left, right, i) {
			pass(i)
			i++
			continue
		}

		start := i
		for i < len(left) && bothEqual(left, right, i) {
			i++
		}
		end := i - 1
		id := blockID(start, end)

		if end-start+1 < CollapseMin || opts.Expanded[id] {
			for k := start; k <= end; k++ {
				pass(k)
			}
			continue
		}

		headEnd := start + CollapseContext - 1
		tailStart := end - CollapseContext + 1
		for k := start; k <= headEnd; k++ {
			pass(k)
		}

		collapsed := Row{
			Kind:     RowCollapsed,
			Text:     collapsedLabel(tailStart - headEnd - 1),
			RawIndex: headEnd + 1,
			BlockID:  id,
			RawStart: headEnd + 1,
			RawEnd:   tailStart - 1,
		}
		at := len(d.Left)
		d.Left = append(d.Left, collapsed)
		d.Right = append(d.Right, collapsed)
		for k := headEnd + 1; k < tailStart; k++ {
			d.RawToDisplay[k] = at
		}

		for k := tailStart; k <= end; k++ {
			pass(k)
		}
	}

	return d
}

func passRow(r Row, raw int) Row {
	r.RawIndex = raw
	return r
}

func blockID(start, end int) string {
	return fmt.Sprintf("block-%d-%d", start, end)
}

func collapsedLabel(hidden int) string {
	if hidden == 1 {
		return "... 1 unchanged line (click to expand)"
	}
	return fmt.Sprintf("... %d unchanged lines (click to expand)", hidden)
}
