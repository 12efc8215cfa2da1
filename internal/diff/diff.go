package diff

// RowKind tags an aligned or display row.
type RowKind int

// Row kinds. RowCollapsed only appears in display rows produced by PlanDisplay.
const (
	RowEqual RowKind = iota
	RowDelete
	RowInsert
	RowEmpty
	RowCollapsed
)

// String returns the lower-case name of k.
func (k RowKind) String() string {
	switch k {
	case RowEqual:
		return "equal"
	case RowDelete:
		return "delete"
	case RowInsert:
		return "insert"
	case RowEmpty:
		return "empty"
	case RowCollapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

// Row is one line-sized unit of one side of a side-by-side diff.
//
// For aligned rows (Result.Left/Result.Right), RawIndex is the row's own position. For display rows, RawIndex is the aligned row it passes through, or the first hidden raw index
// for a collapsed row.
type Row struct {
	Kind     RowKind
	Text     string // Raw line text (never the comparison key). "" for RowEmpty. The placeholder label for RowCollapsed.
	Line     int    // 1-based line number on this side; 0 for RowEmpty and RowCollapsed.
	RawIndex int

	// Only set for RowCollapsed:
	BlockID  string
	RawStart int // First hidden raw index (inclusive).
	RawEnd   int // Last hidden raw index (inclusive).
}

// HasLine reports whether r carries a line number.
func (r Row) HasLine() bool {
	return r.Line > 0
}

// Options control ComputeDiff.
type Options struct {
	IgnoreWhitespace bool // If true, lines are compared with all whitespace removed. Displayed text is unaffected.
}

// Result is the output of ComputeDiff.
type Result struct {
	Left      []Row    // Aligned left rows. Same length as Right.
	Right     []Row    // Aligned right rows.
	Hunks     []Hunk   // Ordered, maximal spans of changed rows.
	RawToHunk []string // Raw index -> hunk id, or "" where no hunk covers the index.
}

// Empty reports whether neither side had any content.
func (r Result) Empty() bool {
	return len(r.Left) == 0
}

// HasChanges reports whether r has at least one hunk.
func (r Result) HasChanges() bool {
	return len(r.Hunks) > 0
}

// ComputeDiff diffs leftText against rightText.
//
// Line endings are normalized first. A side whose text is "" contributes no lines at all (not a single empty line), so two empty texts produce an empty Result.
func ComputeDiff(leftText, rightText string, opts Options) Result {
	leftLines := contentLines(leftText)
	rightLines := contentLines(rightText)

	key := func(line string) string {
		return CompareKey(line, opts.IgnoreWhitespace)
	}
	ops := Match(leftLines, rightLines, key)
	left, right := Align(ops)
	hunks := BuildHunks(left, right)

	return Result{
		Left:      left,
		Right:     right,
		Hunks:     hunks,
		RawToHunk: HunkMap(len(left), hunks),
	}
}

// contentLines tokenizes text, treating "" as no content.
func contentLines(text string) []string {
	if text == "" {
		return nil
	}
	return Tokenize(text)
}
