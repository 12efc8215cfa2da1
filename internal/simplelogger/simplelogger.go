package simplelogger

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"
)

// EnvVar names the environment variable holding the log file path.
const EnvVar = "SPLITDIFF_LOG_FILE"

var mu sync.Mutex

// now is replaced in tests.
var now = time.Now

// Enabled reports whether EnvVar is set, so callers can skip building expensive log arguments.
func Enabled() bool {
	return os.Getenv(EnvVar) != ""
}

// Log is a minimal printf-style logger. It appends formatted output, plus a newline if missing, to the file specified by the SPLITDIFF_LOG_FILE environment variable.
//
// If SPLITDIFF_LOG_FILE is unset/empty or the path can't be opened as a file, Log is a no-op.
func Log(format string, args ...any) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return
	}

	// Serialize open/write/close to reduce interleaving within a single process.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = f.Write(b.Bytes())
}

// Trace logs "<name> took <duration>" when the returned func is called. Use it as:
//
//	defer simplelogger.Trace("compute diff")()
func Trace(name string) func() {
	if !Enabled() {
		return func() {}
	}
	start := now()
	return func() {
		Log("%s took %s", name, now().Sub(start))
	}
}
