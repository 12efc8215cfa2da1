package diff

// Align converts an edit script into two equal-length row sequences.
//
// OpEqual appends one RowEqual to each side. Each maximal run of non-equal ops is split into its deletes and its inserts (each keeping relative order), which are then paired
// row by row; the shorter list is padded with RowEmpty rows. A pure replacement thus lines up side by side instead of showing a delete block followed by an insert block.
//
// Line numbers are 1-based and counted per side: the left counter advances on equal/delete rows, the right counter on equal/insert rows.
func Align(ops []EditOp) (left, right []Row) {
	left = make([]Row, 0, len(ops))
	right = make([]Row, 0, len(ops))
	leftLine := 0
	rightLine := 0

	i := 0
	for i < len(ops) {
		if ops[i].Kind == OpEqual {
			leftLine++
			rightLine++
			raw := len(left)
			left = append(left, Row{Kind: RowEqual, Text: ops[i].Left, Line: leftLine, RawIndex: raw})
			right = append(right, Row{Kind: RowEqual, Text: ops[i].Right, Line: rightLine, RawIndex: raw})
			i++
			continue
		}

		var dels, ins []string
		for i < len(ops) && ops[i].Kind != OpEqual {
			if ops[i].Kind == OpDelete {
				dels = append(dels, ops[i].Left)
			} else {
				ins = append(ins, ops[i].Right)
			}
			i++
		}

		for k := 0; k < max(len(dels), len(ins)); k++ {
			raw := len(left)
			if k < len(dels) {
				leftLine++
				left = append(left, Row{Kind: RowDelete, Text: dels[k], Line: leftLine, RawIndex: raw})
			} else {
				left = append(left, Row{Kind: RowEmpty, RawIndex: raw})
			}
			if k < len(ins) {
				rightLine++
				right = append(right, Row{Kind: RowInsert, Text: ins[k], Line: rightLine, RawIndex: raw})
			} else {
				right = append(right, Row{Kind: RowEmpty, RawIndex: raw})
			}
		}
	}

	return left, right
}
