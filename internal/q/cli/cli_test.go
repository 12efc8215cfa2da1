package cli

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func runCLI(t *testing.T, root *Command, args []string) (int, string, string) {
	t.Helper()
	var out bytes.Buffer
	var errOut bytes.Buffer
	code := Run(context.Background(), root, Options{
		Args: args,
		In:   strings.NewReader(""),
		Out:  &out,
		Err:  &errOut,
	})
	return code, out.String(), errOut.String()
}

// diffTree builds a small diff-tool-shaped command tree and records what ran.
type diffTree struct {
	root   *Command
	hunks  *Command
	ran    string
	args   []string
	ctx    *Context
	ignore *bool
	color  *string
	width  *int
	expand *[]string
	search *string
}

func newDiffTree() *diffTree {
	tr := &diffTree{}
	tr.root = &Command{Name: "prog", Use: "<left> <right>", Args: ExactArgs(2)}
	tr.ignore = tr.root.PersistentFlags().Bool("ignore-whitespace", 'w', false, "Ignore whitespace")
	tr.color = tr.root.PersistentFlags().Choice("color", 0, "auto", []string{"auto", "always", "never"}, "Color mode")
	tr.width = tr.root.Flags().Int("width", 0, 0, "Width")
	tr.expand = tr.root.Flags().StringSlice("expand", 0, "Expand block")
	tr.search = tr.root.Flags().String("search", 's', "", "Search")
	tr.root.Flags().Bool("collapse", 'c', false, "Collapse")
	tr.root.Run = tr.record("root")

	tr.hunks = &Command{Name: "hunks", Aliases: []string{"h"}, Short: "List hunks", Args: ExactArgs(2)}
	tr.hunks.Run = tr.record("hunks")
	tr.root.AddCommand(tr.hunks)
	return tr
}

func (tr *diffTree) record(name string) RunFunc {
	return func(c *Context) error {
		tr.ran = name
		tr.args = append([]string(nil), c.Args...)
		tr.ctx = c
		return nil
	}
}

func TestRun_RootWithInterspersedFlags(t *testing.T) {
	tr := newDiffTree()

	code, stdout, stderr := runCLI(t, tr.root, []string{"a.txt", "--width=80", "-w", "b.txt", "--color", "never"})
	if code != 0 {
		t.Fatalf("code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
	if tr.ran != "root" || !reflect.DeepEqual(tr.args, []string{"a.txt", "b.txt"}) {
		t.Fatalf("ran=%q args=%v", tr.ran, tr.args)
	}
	if *tr.width != 80 || !*tr.ignore || *tr.color != "never" {
		t.Fatalf("width=%d ignore=%v color=%q", *tr.width, *tr.ignore, *tr.color)
	}
	if !tr.ctx.Changed("width") || !tr.ctx.Changed("color") || tr.ctx.Changed("collapse") {
		t.Fatalf("unexpected Changed results")
	}
}

func TestRun_SubcommandByAliasInheritsPersistentFlags(t *testing.T) {
	tr := newDiffTree()

	code, stdout, stderr := runCLI(t, tr.root, []string{"h", "--ignore-whitespace", "x", "y"})
	if code != 0 {
		t.Fatalf("code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
	if tr.ran != "hunks" || !*tr.ignore {
		t.Fatalf("ran=%q ignore=%v", tr.ran, *tr.ignore)
	}
	if !tr.ctx.Changed("ignore-whitespace") {
		t.Fatalf("expected ignore-whitespace to be reported as changed")
	}
}

func TestRun_LocalRootFlagUnknownToSubcommand(t *testing.T) {
	tr := newDiffTree()

	code, _, stderr := runCLI(t, tr.root, []string{"hunks", "--width", "10", "x", "y"})
	if code != 2 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if !strings.Contains(stderr, "unknown flag: --width") || !strings.Contains(stderr, "prog hunks") {
		t.Fatalf("stderr=%q", stderr)
	}
}

func TestRun_DashIsPositional(t *testing.T) {
	tr := newDiffTree()

	code, _, stderr := runCLI(t, tr.root, []string{"-", "b.txt"})
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if !reflect.DeepEqual(tr.args, []string{"-", "b.txt"}) {
		t.Fatalf("args=%v", tr.args)
	}
}

func TestRun_DoubleDashEndsFlags(t *testing.T) {
	tr := newDiffTree()

	code, _, stderr := runCLI(t, tr.root, []string{"-w", "--", "-c", "hunks"})
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if tr.ran != "root" || !reflect.DeepEqual(tr.args, []string{"-c", "hunks"}) {
		t.Fatalf("ran=%q args=%v", tr.ran, tr.args)
	}
	if tr.ctx.Changed("collapse") {
		t.Fatalf("-c after -- must not be parsed")
	}
}

func TestRun_BundledShorthands(t *testing.T) {
	tr := newDiffTree()

	code, _, stderr := runCLI(t, tr.root, []string{"-wc", "a", "b"})
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if !*tr.ignore || !tr.ctx.Changed("collapse") {
		t.Fatalf("expected both bundled flags set")
	}

	// A non-bool shorthand can't be bundled.
	tr = newDiffTree()
	code, _, stderr = runCLI(t, tr.root, []string{"-ws", "a", "b"})
	if code != 2 || !strings.Contains(stderr, "unknown flag: -ws") {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
}

func TestRun_BoolFlagDoesNotTakeNextToken(t *testing.T) {
	tr := newDiffTree()
	code, _, stderr := runCLI(t, tr.root, []string{"-w", "1", "2"})
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if !*tr.ignore || !reflect.DeepEqual(tr.args, []string{"1", "2"}) {
		t.Fatalf("ignore=%v args=%v", *tr.ignore, tr.args)
	}

	tr = newDiffTree()
	code, _, stderr = runCLI(t, tr.root, []string{"--ignore-whitespace=false", "true", "false"})
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if *tr.ignore || !tr.ctx.Changed("ignore-whitespace") || !reflect.DeepEqual(tr.args, []string{"true", "false"}) {
		t.Fatalf("ignore=%v args=%v", *tr.ignore, tr.args)
	}
}

func TestRun_ShortFlagValueForms(t *testing.T) {
	for _, args := range [][]string{
		{"-s", "needle", "a", "b"},
		{"-s=needle", "a", "b"},
		{"-search=needle", "a", "b"},
	} {
		tr := newDiffTree()
		code, _, stderr := runCLI(t, tr.root, args)
		if code != 0 {
			t.Fatalf("args=%v code=%d stderr=%q", args, code, stderr)
		}
		if *tr.search != "needle" || len(tr.args) != 2 {
			t.Fatalf("args=%v search=%q positional=%v", args, *tr.search, tr.args)
		}
	}
}

func TestRun_StringSliceRepeats(t *testing.T) {
	tr := newDiffTree()

	code, _, stderr := runCLI(t, tr.root, []string{"--expand", "block-0-9", "a", "--expand=block-20-40", "b"})
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if !reflect.DeepEqual(*tr.expand, []string{"block-0-9", "block-20-40"}) {
		t.Fatalf("expand=%v", *tr.expand)
	}
}

func TestRun_InvalidValues(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"--color=sometimes", "a", "b"}, "invalid value for --color: must be one of auto, always, never"},
		{[]string{"--width=wide", "a", "b"}, "invalid value for --width"},
		{[]string{"a", "b", "--search"}, "flag needs a value: --search"},
		{[]string{"-x", "a", "b"}, "unknown flag: -x"},
	}
	for _, tc := range cases {
		tr := newDiffTree()
		code, stdout, stderr := runCLI(t, tr.root, tc.args)
		if code != 2 || stdout != "" {
			t.Fatalf("args=%v code=%d stdout=%q", tc.args, code, stdout)
		}
		if !strings.Contains(stderr, tc.want) || !strings.Contains(stderr, "Usage:") {
			t.Fatalf("args=%v stderr=%q", tc.args, stderr)
		}
		if tr.ran != "" {
			t.Fatalf("handler must not run on usage errors")
		}
	}
}

func TestRun_ArgsValidation(t *testing.T) {
	tr := newDiffTree()

	code, _, stderr := runCLI(t, tr.root, []string{"only-one"})
	if code != 2 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if !strings.Contains(stderr, "expected 2 args, got 1") || !strings.Contains(stderr, "prog [flags] [command] <left> <right>") {
		t.Fatalf("stderr=%q", stderr)
	}
}

func TestRun_HelpListsCommandsAndFlags(t *testing.T) {
	tr := newDiffTree()

	code, stdout, stderr := runCLI(t, tr.root, []string{"--help"})
	if code != 0 || stderr != "" {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	for _, want := range []string{
		"Usage:\n  prog [flags] [command] <left> <right>\n",
		"Commands:\n  hunks  List hunks\n",
		"--color <auto|always|never>",
		"-w, --ignore-whitespace",
		"--expand <string>...",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("help missing %q:\n%s", want, stdout)
		}
	}

	tr = newDiffTree()
	_, stdout, _ = runCLI(t, tr.root, []string{"hunks", "-h"})
	if !strings.HasPrefix(stdout, "prog hunks - List hunks\n") || strings.Contains(stdout, "--width") {
		t.Fatalf("subcommand help:\n%s", stdout)
	}
}

func TestRun_NamespaceOnlyCommand(t *testing.T) {
	root := &Command{Name: "prog"}
	cfg := &Command{Name: "config"}
	cfg.AddCommand(&Command{Name: "show", Run: func(*Context) error { return nil }})
	root.AddCommand(cfg)

	code, _, stderr := runCLI(t, root, []string{"config"})
	if code != 2 || !strings.Contains(stderr, "missing required subcommand") {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}

	code, _, stderr = runCLI(t, root, []string{"config", "--", "-h"})
	if code != 2 || !strings.Contains(stderr, "unknown subcommand: -h") {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
}

func TestRun_HandlerErrors(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		code      int
		stderr    string
		wantUsage bool
	}{
		{name: "plain", err: errors.New("boom"), code: 1, stderr: "boom\n"},
		{name: "silent exit", err: ExitError{Code: 1}, code: 1, stderr: ""},
		{name: "exit with message", err: ExitError{Code: 3, Err: errors.New("read failed")}, code: 3, stderr: "read failed\n"},
		{name: "wrapped usage", err: Usagef("bad %s", "input"), code: 2, wantUsage: true},
		{name: "exit zero", err: ExitError{Code: 0, Err: errors.New("ignored")}, code: 0, stderr: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := &Command{Name: "prog", Run: func(*Context) error { return tc.err }}
			code, stdout, stderr := runCLI(t, root, nil)
			if code != tc.code || stdout != "" {
				t.Fatalf("code=%d stdout=%q", code, stdout)
			}
			if tc.wantUsage {
				if !strings.Contains(stderr, "bad input") || !strings.Contains(stderr, "Usage:") {
					t.Fatalf("stderr=%q", stderr)
				}
				return
			}
			if stderr != tc.stderr {
				t.Fatalf("stderr=%q, want %q", stderr, tc.stderr)
			}
		})
	}
}

func TestAddCommand_Panics(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected panic", name)
			}
		}()
		fn()
	}

	root := &Command{Name: "prog"}
	child := &Command{Name: "child"}
	root.AddCommand(child)

	mustPanic("nil", func() { root.AddCommand(nil) })
	mustPanic("reparent", func() { (&Command{Name: "other"}).AddCommand(child) })
	mustPanic("unnamed", func() { root.AddCommand(&Command{}) })
	mustPanic("duplicate flag", func() {
		fs := newFlagSet()
		fs.Bool("x", 0, false, "")
		fs.Bool("x", 0, false, "")
	})
	mustPanic("empty choices", func() { newFlagSet().Choice("c", 0, "", nil, "") })
}
