package cli

import (
	"fmt"
	"io"
	"os"

	qcli "github.com/codalotl/splitdiff/internal/q/cli"
	"github.com/codalotl/splitdiff/internal/simplelogger"
)

const stdinArg = "-"

// input is one side of a diff.
type input struct {
	Name string // Path, or "<stdin>".
	Text string
}

// readInputs reads the left and right inputs named by paths. "-" reads stdin, which may be used for at most one side.
func readInputs(in io.Reader, leftPath, rightPath string) (left, right input, err error) {
	if leftPath == stdinArg && rightPath == stdinArg {
		return input{}, input{}, qcli.Usagef("stdin (-) can be used for at most one input")
	}
	if left, err = readInput(in, leftPath); err != nil {
		return input{}, input{}, err
	}
	if right, err = readInput(in, rightPath); err != nil {
		return input{}, input{}, err
	}
	simplelogger.Log("inputs: %s (%d bytes), %s (%d bytes)", left.Name, len(left.Text), right.Name, len(right.Text))
	return left, right, nil
}

func readInput(in io.Reader, path string) (input, error) {
	if path == stdinArg {
		b, err := io.ReadAll(in)
		if err != nil {
			return input{}, qcli.ExitError{Code: 1, Err: fmt.Errorf("read stdin: %w", err)}
		}
		return input{Name: "<stdin>", Text: string(b)}, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return input{}, qcli.ExitError{Code: 1, Err: fmt.Errorf("read %s: %w", path, err)}
	}
	return input{Name: path, Text: string(b)}, nil
}
