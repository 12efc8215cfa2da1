package diff

import (
	"strconv"
	"strings"

	"github.com/codalotl/splitdiff/internal/q/termformat"
)

// DefaultRenderWidth is used by RenderSideBySide when RenderOptions.Width is not positive.
const DefaultRenderWidth = 120

// RenderOptions control RenderSideBySide.
type RenderOptions struct {
	Width    int // Total width in terminal cells.
	TabWidth int // Tab stop width; 0 leaves tabs as-is (not recommended: they break column alignment).
	Color    bool

	LeftName  string // Optional pane headers. No header line if both are empty.
	RightName string

	Query      string          // Search hits are highlighted (reverse video) when Color is set.
	RawToHunk  []string        // From Result.RawToHunk; enables the hunk gutter.
	Reviewed   map[string]bool // Hunk ids rendered with the reviewed mark.
	ActiveHunk string          // Hunk id rendered with the active mark.
}

// Gutter marks.
const (
	markActive   = ">"
	markReviewed = "✓"
	markChanged  = "│"
	paneSep      = " │ "
)

// Colors (ANSI) for side-by-side output.
var (
	blackFG   = "\x1b[30m"
	pinkLine  = termformat.Background256(224) // light pink for deleted lines
	greenLine = termformat.Background256(194) // light green for added lines
)

// RenderSideBySide renders d as two panes, one output line per display row:
//
//	<gutter> <left ln> <sign><left text> │ <right ln> <sign><right text>
//
// Signs are "-" for deletions, "+" for insertions and " " otherwise. Collapsed rows show their label in both panes. The gutter shows markActive for rows of the active hunk,
// markReviewed for rows of reviewed hunks, and markChanged for rows of other hunks.
//
// Each pane's text is sanitized (tabs expanded, control characters escaped) and fit to the pane with termformat.FitWidth, so every line has the same width. Without Color the
// output contains no escape sequences and trailing spaces are trimmed. Lines are joined with "\n" with no trailing newline; an empty Display renders as "" (plus the header,
// if any).
func RenderSideBySide(d Display, opts RenderOptions) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultRenderWidth
	}

	lnWidth := lineNumberWidth(d)
	paneWidth := max((width-2-termformat.TextWidthWithANSICodes(paneSep))/2, lnWidth+3)
	textWidth := paneWidth - lnWidth - 2

	var out []string
	if opts.LeftName != "" || opts.RightName != "" {
		header := "  " + termformat.FitWidth(opts.LeftName, paneWidth) + paneSep + termformat.FitWidth(opts.RightName, paneWidth)
		if opts.Color {
			header = termformat.Style(header, termformat.ANSIBoldCyan)
		} else {
			header = strings.TrimRight(header, " ")
		}
		out = append(out, header)
	}

	for i := range d.Left {
		l, r := d.Left[i], d.Right[i]
		gutter := " "
		if l.Kind != RowCollapsed {
			gutter = gutterMark(opts, l.RawIndex)
		}

		left := renderCell(l, lnWidth, textWidth, opts)
		right := renderCell(r, lnWidth, textWidth, opts)
		line := gutter + " " + left + paneSep + right
		if !opts.Color {
			line = strings.TrimRight(line, " ")
		}
		out = append(out, line)
	}

	return strings.Join(out, defaultEOL)
}

func gutterMark(opts RenderOptions, raw int) string {
	if raw < 0 || raw >= len(opts.RawToHunk) {
		return " "
	}
	id := opts.RawToHunk[raw]
	switch {
	case id == "":
		return " "
	case id == opts.ActiveHunk:
		return markActive
	case opts.Reviewed[id]:
		return markReviewed
	default:
		return markChanged
	}
}

// renderCell renders one pane of one row: line number, sign, and text fit to textWidth.
func renderCell(r Row, lnWidth, textWidth int, opts RenderOptions) string {
	ln := strings.Repeat(" ", lnWidth)
	if r.HasLine() {
		s := strconv.Itoa(r.Line)
		ln = strings.Repeat(" ", max(lnWidth-len(s), 0)) + s
	}

	sign := " "
	switch r.Kind {
	case RowDelete:
		sign = "-"
	case RowInsert:
		sign = "+"
	}

	text := termformat.FitWidth(termformat.Sanitize(r.Text, opts.TabWidth), textWidth)
	if !opts.Color {
		return ln + " " + sign + text
	}

	switch r.Kind {
	case RowDelete:
		return ln + " " + blackFG + pinkLine + sign + highlight(text, opts.Query, blackFG+pinkLine) + termformat.ANSIReset
	case RowInsert:
		return ln + " " + blackFG + greenLine + sign + highlight(text, opts.Query, blackFG+greenLine) + termformat.ANSIReset
	case RowEmpty:
		return ln + " " + sign + text
	case RowCollapsed:
		return ln + " " + sign + termformat.Style(text, termformat.ANSIDim+termformat.ANSICyan)
	default:
		return ln + " " + sign + highlight(text, opts.Query, "")
	}
}

// highlight wraps each case-insensitive occurrence of query in text with reverse video, restoring base after each one.
func highlight(text, query, base string) string {
	spans := MatchSpans(text, query)
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(text[last:sp[0]])
		b.WriteString(termformat.ANSIReverse)
		b.WriteString(text[sp[0]:sp[1]])
		b.WriteString(termformat.ANSIReset)
		b.WriteString(base)
		last = sp[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func lineNumberWidth(d Display) int {
	maxLine := 0
	for i := range d.Left {
		maxLine = max(maxLine, d.Left[i].Line, d.Right[i].Line)
	}
	return len(strconv.Itoa(maxLine))
}

// RenderHunkList renders one line per hunk: "<id>  rows <start>-<end>  left <line>  right <line>", where a missing line number renders as "-".
func RenderHunkList(hunks []Hunk, reviewed map[string]bool) string {
	var out []string
	for _, h := range hunks {
		var b strings.Builder
		b.WriteString(h.ID)
		b.WriteString("  rows ")
		b.WriteString(strconv.Itoa(h.Start))
		b.WriteString("-")
		b.WriteString(strconv.Itoa(h.End))
		b.WriteString("  left ")
		b.WriteString(lineOrDash(h.LeftLine))
		b.WriteString("  right ")
		b.WriteString(lineOrDash(h.RightLine))
		if reviewed[h.ID] {
			b.WriteString("  reviewed")
		}
		out = append(out, b.String())
	}
	return strings.Join(out, defaultEOL)
}

func lineOrDash(line int) string {
	if line <= 0 {
		return "-"
	}
	return strconv.Itoa(line)
}
