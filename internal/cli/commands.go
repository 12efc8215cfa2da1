package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/codalotl/splitdiff/internal/diff"
	qcli "github.com/codalotl/splitdiff/internal/q/cli"
	"github.com/codalotl/splitdiff/internal/simplelogger"
)

type configState struct {
	once sync.Once
	cfg  Config
	err  error
}

func (s *configState) get() (Config, error) {
	s.once.Do(func() {
		s.cfg, _, s.err = loadConfig("")
	})
	return s.cfg, s.err
}

// viewFlags are the flags shared by every command that renders or lists a diff.
type viewFlags struct {
	ignoreWhitespace *bool
	collapse         *bool
	color            *string
	width            *int
	tabWidth         *int
	reviewed         *[]string
	expanded         *[]string
}

// settings are the effective view settings: Config overridden by explicitly set flags.
type settings struct {
	IgnoreWhitespace bool
	Collapse         bool
	Color            bool
	Width            int
	TabWidth         int
	Reviewed         map[string]bool
	Expanded         map[string]bool
}

func (f viewFlags) resolve(c *qcli.Context, cfg Config) (settings, error) {
	if c.Changed("width") && *f.width <= 0 {
		return settings{}, qcli.Usagef("--width must be > 0")
	}
	if c.Changed("tab-width") && *f.tabWidth <= 0 {
		return settings{}, qcli.Usagef("--tab-width must be > 0")
	}

	s := settings{
		IgnoreWhitespace: cfg.IgnoreWhitespace,
		Collapse:         cfg.Collapse,
		Width:            cfg.Width,
		TabWidth:         cfg.TabWidth,
		Reviewed:         toSet(*f.reviewed),
		Expanded:         toSet(*f.expanded),
	}
	colorMode := cfg.Color
	if c.Changed("ignore-whitespace") {
		s.IgnoreWhitespace = *f.ignoreWhitespace
	}
	if c.Changed("collapse") {
		s.Collapse = *f.collapse
	}
	if c.Changed("color") {
		colorMode = *f.color
	}
	if c.Changed("width") {
		s.Width = *f.width
	}
	if c.Changed("tab-width") {
		s.TabWidth = *f.tabWidth
	}
	if s.Width <= 0 {
		s.Width = detectTerminalWidth(c.Out)
	}
	s.Color = useColor(colorMode, c.Out)
	return s, nil
}

func newRootCommand() *qcli.Command {
	cfgState := &configState{}

	root := &qcli.Command{
		Name:  "splitdiff",
		Use:   "<left> <right>",
		Short: "splitdiff shows a side-by-side line diff of two texts.",
		Long: `Lines are matched by longest common subsequence and paired up side by side: deletions on the left, insertions on the right.
Either input may be "-" to read it from stdin.`,
		Example: `splitdiff old.txt new.txt
splitdiff -w --collapse old.go new.go
git show HEAD:main.go | splitdiff - main.go
splitdiff --search TODO old.txt new.txt`,
		Args: qcli.ExactArgs(2),
	}

	pflags := root.PersistentFlags()
	vf := viewFlags{
		ignoreWhitespace: pflags.Bool("ignore-whitespace", 'w', false, "Ignore all whitespace when comparing lines."),
		collapse:         pflags.Bool("collapse", 'c', false, fmt.Sprintf("Fold runs of %d or more unchanged lines.", diff.CollapseMin)),
		color:            pflags.Choice("color", 0, "", colorModes, "Colorize output (default from config: auto)."),
		width:            pflags.Int("width", 0, 0, "Output width in columns (default: terminal width)."),
		tabWidth:         pflags.Int("tab-width", 0, 4, "Tab stop width."),
		reviewed:         pflags.StringSlice("reviewed", 0, "Mark a hunk id as reviewed. Repeatable."),
		expanded:         pflags.StringSlice("expand", 0, "Unfold a collapsed block id. Repeatable."),
	}

	rootFlags := root.Flags()
	search := rootFlags.String("search", 's', "", "Highlight lines containing this text (case-insensitive).")
	active := rootFlags.String("active", 0, "", "Mark a hunk as active, by id or 1-based index.")
	exitCode := rootFlags.Bool("exit-code", 0, false, "Exit with status 1 if the inputs differ.")

	// withInputs loads config, resolves settings, reads both inputs, and computes their diff.
	withInputs := func(next func(c *qcli.Context, s settings, left, right input, res diff.Result) error) qcli.RunFunc {
		return func(c *qcli.Context) error {
			cfg, err := cfgState.get()
			if err != nil {
				return qcli.ExitError{Code: 1, Err: err}
			}
			s, err := vf.resolve(c, cfg)
			if err != nil {
				return err
			}
			n := len(c.Args)
			left, right, err := readInputs(c.In, c.Args[n-2], c.Args[n-1])
			if err != nil {
				return err
			}
			res := computeDiff(left.Text, right.Text, diff.Options{IgnoreWhitespace: s.IgnoreWhitespace})
			s.Reviewed = diff.PruneReviewed(s.Reviewed, res.Hunks)
			return next(c, s, left, right, res)
		}
	}

	root.Run = withInputs(func(c *qcli.Context, s settings, left, right input, res diff.Result) error {
		d := diff.PlanDisplay(res.Left, res.Right, diff.DisplayOptions{Collapse: s.Collapse, Expanded: s.Expanded})
		opts := renderOptions(s, left, right, res)
		opts.Query = *search
		opts.ActiveHunk = activeHunkID(res.Hunks, *active)

		if err := writeStringln(c.Out, diff.RenderSideBySide(d, opts)); err != nil {
			return err
		}
		if err := writeSummary(c.Out, res); err != nil {
			return err
		}
		if *search != "" {
			if err := writeMatchCount(c.Out, diff.UpdateSearch(diff.Search{}, d, *search, false)); err != nil {
				return err
			}
		}
		if *exitCode && res.HasChanges() {
			return qcli.ExitError{Code: 1}
		}
		return nil
	})

	hunksCmd := &qcli.Command{
		Name:  "hunks",
		Use:   "<left> <right>",
		Short: "List hunk ids and their positions.",
		Args:  qcli.ExactArgs(2),
		Run: withInputs(func(c *qcli.Context, s settings, _, _ input, res diff.Result) error {
			if len(res.Hunks) == 0 {
				return writeStringln(c.Out, "No changes")
			}
			return writeStringln(c.Out, diff.RenderHunkList(res.Hunks, s.Reviewed))
		}),
	}

	searchCmd := &qcli.Command{
		Name:  "search",
		Use:   "<query> <left> <right>",
		Short: "Print only the rows containing query (case-insensitive).",
		Args:  qcli.ExactArgs(3),
		Run: withInputs(func(c *qcli.Context, s settings, left, right input, res diff.Result) error {
			query := c.Args[0]
			if strings.TrimSpace(query) == "" {
				return qcli.Usagef("empty search query")
			}
			d := diff.PlanDisplay(res.Left, res.Right, diff.DisplayOptions{Collapse: s.Collapse, Expanded: s.Expanded})
			found := diff.UpdateSearch(diff.Search{}, d, query, false)
			if len(found.Rows) == 0 {
				return writeStringln(c.Out, "No matches")
			}

			opts := renderOptions(s, left, right, res)
			opts.Query = query
			if err := writeStringln(c.Out, diff.RenderSideBySide(selectRows(d, found.Rows), opts)); err != nil {
				return err
			}
			return writeMatchCount(c.Out, found)
		}),
	}

	configCmd := &qcli.Command{
		Name:  "config",
		Short: "Print the effective splitdiff configuration.",
		Args:  qcli.NoArgs,
	}
	sources := configCmd.Flags().Bool("sources", 0, false, "Print the sources the configuration was loaded from, lowest precedence first.")
	configCmd.Run = func(c *qcli.Context) error {
		cfg, report, err := loadConfig("")
		if err != nil {
			return qcli.ExitError{Code: 1, Err: err}
		}
		if *sources {
			for _, p := range report.Sources {
				if err := writeStringln(c.Out, p.String()); err != nil {
					return err
				}
			}
			return nil
		}
		return writeConfigJSON(c.Out, cfg)
	}

	versionCmd := &qcli.Command{
		Name:  "version",
		Short: "Print splitdiff version.",
		Args:  qcli.NoArgs,
		Run: func(c *qcli.Context) error {
			return writeStringln(c.Out, Version)
		},
	}

	root.AddCommand(hunksCmd, searchCmd, configCmd, versionCmd)
	return root
}

// toSet returns a non-nil set of the non-empty, trimmed ids.
func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}

func computeDiff(leftText, rightText string, opts diff.Options) diff.Result {
	defer simplelogger.Trace("compute diff")()
	res := diff.ComputeDiff(leftText, rightText, opts)
	simplelogger.Log("diff: %d rows, %d hunks", len(res.Left), len(res.Hunks))
	return res
}

func renderOptions(s settings, left, right input, res diff.Result) diff.RenderOptions {
	return diff.RenderOptions{
		Width:     s.Width,
		TabWidth:  s.TabWidth,
		Color:     s.Color,
		LeftName:  left.Name,
		RightName: right.Name,
		RawToHunk: res.RawToHunk,
		Reviewed:  s.Reviewed,
	}
}

// activeHunkID resolves arg (a hunk id, or a 1-based hunk index) to a hunk id. An empty arg selects no hunk; an unknown id or out-of-range index falls back to the first hunk.
func activeHunkID(hunks []diff.Hunk, arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return ""
	}
	var i int
	if n, err := strconv.Atoi(arg); err == nil {
		i = diff.ResolveActiveHunk(hunks, "", n-1)
	} else {
		i = diff.ResolveActiveHunk(hunks, arg, 0)
	}
	if i < 0 {
		return ""
	}
	return hunks[i].ID
}

// selectRows returns the sub-display of d made of the display rows at indices.
func selectRows(d diff.Display, indices []int) diff.Display {
	sub := diff.Display{
		Left:  make([]diff.Row, 0, len(indices)),
		Right: make([]diff.Row, 0, len(indices)),
	}
	for _, i := range indices {
		sub.Left = append(sub.Left, d.Left[i])
		sub.Right = append(sub.Right, d.Right[i])
	}
	return sub
}

func writeSummary(w io.Writer, res diff.Result) error {
	if err := writeStringln(w, ""); err != nil {
		return err
	}
	if err := writeStringln(w, res.Stats().String()); err != nil {
		return err
	}
	if len(res.Hunks) == 0 {
		return writeStringln(w, "No changes")
	}
	return writeStringln(w, fmt.Sprintf("Hunks: %d", len(res.Hunks)))
}

func writeMatchCount(w io.Writer, s diff.Search) error {
	if len(s.Rows) == 0 {
		return writeStringln(w, "No matches")
	}
	return writeStringln(w, fmt.Sprintf("Matches: %d", len(s.Rows)))
}

func writeStringln(w io.Writer, s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := fmt.Fprint(w, s)
	return err
}
