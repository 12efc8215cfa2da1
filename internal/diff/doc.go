// Package diff computes line-oriented, side-by-side diffs between a "left" and a "right" text.
//
// Pipeline: ComputeDiff tokenizes both texts into lines, matches them with an LCS edit script (optionally under a whitespace-insensitive comparison key), aligns the script
// into two equal-length row sequences, and groups contiguous changes into hunks. PlanDisplay projects the aligned rows into display rows, folding long unchanged runs into
// collapsed placeholder rows. FindMatches searches display rows for a query.
//
//	res := diff.ComputeDiff(left, right, diff.Options{IgnoreWhitespace: true})
//	d := diff.PlanDisplay(res.Left, res.Right, diff.DisplayOptions{Collapse: true, Expanded: expanded})
//	rows := diff.FindMatches(d.Left, d.Right, "needle")
//
// Addressing: a "raw index" is a position in Result.Left/Result.Right. Display rows carry their raw index; Display.RawToDisplay maps every raw index to exactly one display row
// (the collapsed row, for folded indices). Hunk and block ids are pure functions of their raw-index span, so they are stable across recomputation of unchanged inputs. Callers
// that keep sets of reviewed hunk ids or expanded block ids across recomputation should intersect them with the current ids (see PruneReviewed).
//
// Invariants:
//   - len(Result.Left) == len(Result.Right) and len(Display.Left) == len(Display.Right).
//   - At a raw index, at most one side is RowEmpty; a RowEmpty on the left pairs with RowInsert on the right, and vice versa with RowDelete.
//   - RowEqual rows occur in sync on both sides.
//   - Hunks are maximal, ordered, and non-adjacent; every raw index where not both sides are RowEqual is covered by exactly one hunk.
//
// Cost: matching is O(n·m) in time and space over line counts. There is no truncation or fallback for large inputs; callers that need one should bound input size first.
//
// Nothing in this package does I/O, holds state between calls, or returns errors: every function is total over its inputs.
package diff
