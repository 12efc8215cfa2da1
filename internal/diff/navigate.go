package diff

// PruneReviewed returns a new set holding only the ids in reviewed that name one of hunks. Recomputing a diff (ex: after toggling whitespace handling) can reshape hunks,
// and ids that no longer match any hunk must be dropped rather than kept as orphans. reviewed is not modified.
func PruneReviewed(reviewed map[string]bool, hunks []Hunk) map[string]bool {
	out := make(map[string]bool, len(reviewed))
	for _, h := range hunks {
		if reviewed[h.ID] {
			out[h.ID] = true
		}
	}
	return out
}

// ResolveActiveHunk picks the active hunk index after a recompute: the hunk whose id is activeID if it still exists, else activeIndex if it is in range, else 0. It returns -1
// when there are no hunks.
func ResolveActiveHunk(hunks []Hunk, activeID string, activeIndex int) int {
	if len(hunks) == 0 {
		return -1
	}
	if activeID != "" {
		for i, h := range hunks {
			if h.ID == activeID {
				return i
			}
		}
		return 0
	}
	if activeIndex >= 0 && activeIndex < len(hunks) {
		return activeIndex
	}
	return 0
}

// ClampHunkIndex clamps i into [0, n-1], or returns -1 if n == 0. Use it for first/prev/next/last navigation, which stops at the ends rather than wrapping.
func ClampHunkIndex(i, n int) int {
	if n <= 0 {
		return -1
	}
	return max(0, min(i, n-1))
}

// HunkAt returns the hunk covering raw index rawIndex and its position in r.Hunks.
func (r Result) HunkAt(rawIndex int) (Hunk, int, bool) {
	if rawIndex < 0 || rawIndex >= len(r.RawToHunk) || r.RawToHunk[rawIndex] == "" {
		return Hunk{}, -1, false
	}
	id := r.RawToHunk[rawIndex]
	for i, h := range r.Hunks {
		if h.ID == id {
			return h, i, true
		}
	}
	return Hunk{}, -1, false
}
