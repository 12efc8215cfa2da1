package cli

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/codalotl/splitdiff/internal/diff"
	"golang.org/x/term"
)

// terminalFD returns w's file descriptor if w is a terminal.
func terminalFD(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// detectTerminalWidth returns w's terminal width, else a positive $COLUMNS, else diff.DefaultRenderWidth.
func detectTerminalWidth(w io.Writer) int {
	if fd, ok := terminalFD(w); ok {
		if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
			return cols
		}
	}
	if cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && cols > 0 {
		return cols
	}
	return diff.DefaultRenderWidth
}

// useColor resolves a color mode against w. auto colors only when w is a terminal and NO_COLOR is unset.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	_, ok := terminalFD(w)
	return ok
}
