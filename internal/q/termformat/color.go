package termformat

import "strconv"

// ANSIReset resets all SGR attributes.
const ANSIReset = "\x1b[0m"

// SGR sequences used by splitdiff's renderers.
const (
	ANSIDim      = "\x1b[2m"
	ANSIReverse  = "\x1b[7m"
	ANSICyan     = "\x1b[36m"
	ANSIBoldCyan = "\x1b[1;36m"
)

// Background256 returns the SGR sequence selecting 256-color palette entry n as the background.
func Background256(n uint8) string {
	return "\x1b[48;5;" + strconv.Itoa(int(n)) + "m"
}

// Style wraps s in seq and a reset. If seq or s is empty, s is returned unchanged.
func Style(s, seq string) string {
	if seq == "" || s == "" {
		return s
	}
	return seq + s + ANSIReset
}
