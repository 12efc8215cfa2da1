package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type Options struct {
	// Args is the argv excluding the program name (typically os.Args[1:]).
	Args []string

	// In/Out/Err override standard I/O. If nil, defaults are used.
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Context is passed to a command handler.
//
// Positional args are in Args. Flag values are read via pointers bound at command construction time (ex: fs.Bool(...)); use Changed to tell an explicit flag from its default.
type Context struct {
	context.Context

	Command *Command
	Args    []string

	In  io.Reader
	Out io.Writer
	Err io.Writer

	flags activeFlags
}

// Changed reports whether the flag called name (local or inherited) was set on the command line.
func (c *Context) Changed(name string) bool {
	def, ok := c.flags.byLong[name]
	return ok && def.changed
}

// Run executes a command tree as a CLI program and returns a process exit code:
//   - 0 on success or after printing help (-h/--help).
//   - 2 for usage errors, which are printed with the selected command's help.
//   - An ExitCoder's code for handler errors that implement it.
//   - 1 for any other handler error.
func Run(ctx context.Context, root *Command, opts Options) int {
	if root == nil {
		panic("cli: Run called with nil root")
	}
	if root.Name == "" {
		panic("cli: Run called with root.Name empty")
	}

	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	selected, args, err := parseArgv(root, opts.Args, out)
	if err != nil {
		if errors.Is(err, errHelpPrinted) {
			return 0
		}
		printUsageError(root, selected, err, errOut)
		return 2
	}

	if selected.Run == nil {
		if len(args) == 0 {
			printUsageError(root, selected, Usagef("missing required subcommand"), errOut)
		} else {
			printUsageError(root, selected, Usagef("unknown subcommand: %s", args[0]), errOut)
		}
		return 2
	}

	if selected.Args != nil {
		if err := selected.Args(args); err != nil {
			return exitForError(root, selected, err, errOut, 2)
		}
	}

	c := &Context{
		Context: ctx,
		Command: selected,
		Args:    args,
		In:      in,
		Out:     out,
		Err:     errOut,
		flags:   selected.activeFlags(),
	}
	if err := selected.Run(c); err != nil {
		return exitForError(root, selected, err, errOut, 1)
	}
	return 0
}

var errHelpPrinted = errors.New("help printed")

// parseArgv selects the deepest command named by leading tokens and parses flags anywhere in argv. Everything after "--" is positional.
func parseArgv(root *Command, argv []string, out io.Writer) (*Command, []string, error) {
	selected := root
	selectionEnded := false
	var positional []string

	for i := 0; i < len(argv); i++ {
		token := argv[i]

		switch {
		case token == "--":
			positional = append(positional, argv[i+1:]...)
			return selected, positional, nil

		case token == "-h" || token == "--help":
			writeHelp(out, root, selected)
			return selected, nil, errHelpPrinted

		case isFlagToken(token):
			var next *string
			if i+1 < len(argv) {
				next = &argv[i+1]
			}
			consumed, err := parseFlagToken(selected.activeFlags(), token, next)
			if err != nil {
				return selected, nil, err
			}
			if consumed {
				i++
			}

		case !selectionEnded && selected.childByToken(token) != nil:
			selected = selected.childByToken(token)

		default:
			selectionEnded = true
			positional = append(positional, token)
		}
	}
	return selected, positional, nil
}

// isFlagToken reports whether token looks like a flag. "-" alone is a positional arg (conventionally stdin).
func isFlagToken(token string) bool {
	return strings.HasPrefix(token, "-") && token != "-"
}

// parseFlagToken parses one flag token, possibly taking its value from next. It reports whether next was consumed.
//
// Accepted forms: --name, --name=value, --name value, -n, -n=value, -n value, -name (single-dash long), and bundled boolean shorthands (-wc).
func parseFlagToken(active activeFlags, token string, next *string) (bool, error) {
	if strings.HasPrefix(token, "--") {
		name, value, hasValue := strings.Cut(token[2:], "=")
		def := active.byLong[name]
		if def == nil {
			return false, Usagef("unknown flag: %s", token)
		}
		return assign(def, token, value, hasValue, next)
	}

	body := token[1:]
	name, value, hasValue := strings.Cut(body, "=")
	if def := active.byLong[name]; def != nil && len(name) > 1 {
		return assign(def, token, value, hasValue, next)
	}

	runes := []rune(name)
	if len(runes) == 1 {
		def := active.byShort[runes[0]]
		if def == nil {
			return false, Usagef("unknown flag: %s", token)
		}
		return assign(def, token, value, hasValue, next)
	}

	// Bundled shorthands: every one must be a bool flag, and no value may be attached.
	if hasValue {
		return false, Usagef("unknown flag: %s", token)
	}
	for _, r := range runes {
		def := active.byShort[r]
		if def == nil || def.kind != flagBool {
			return false, Usagef("unknown flag: %s", token)
		}
	}
	for _, r := range runes {
		if err := active.byShort[r].set("true"); err != nil {
			return false, Usagef("invalid value for %s: %v", active.byShort[r].display(), err)
		}
	}
	return false, nil
}

// assign sets def from an attached value, a following token, or (for bools) an implied "true". An explicit bool value must be attached (--name=false).
func assign(def *flagDef, token, value string, hasValue bool, next *string) (bool, error) {
	consumed := false
	switch {
	case hasValue:
	case def.kind == flagBool:
		// Bools never take the next token: it is usually a positional arg (ex: a file named "1").
		value = "true"
	case next == nil || *next == "--":
		return false, Usagef("flag needs a value: %s", token)
	default:
		value = *next
		consumed = true
	}

	if err := def.set(value); err != nil {
		return false, Usagef("invalid value for %s: %v", def.display(), err)
	}
	return consumed, nil
}

// exitForError maps err to an exit code. Errors without an ExitCoder get fallback; usage errors (code 2) are printed with help.
func exitForError(root, cmd *Command, err error, errOut io.Writer, fallback int) int {
	code := fallback
	var ec ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}

	switch code {
	case 0:
		return 0
	case 2:
		printUsageError(root, cmd, err, errOut)
		return 2
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(errOut, msg)
	}
	return code
}

func printUsageError(root, cmd *Command, err error, errOut io.Writer) {
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(errOut, msg)
		fmt.Fprintln(errOut)
	}
	writeHelp(errOut, root, cmd)
}
