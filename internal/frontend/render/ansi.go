// Package render formats battle state, rosters and log events as ANSI
// terminal text.
package render

import (
	"fmt"
	"strings"
)

// SGR sequences used by the battle screen.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	// Event and pool colors.
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"

	// Headings, banners and defeated actors.
	BrightBlack  = "\033[90m"
	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
	BrightWhite  = "\033[97m"
)

// Colorize wraps text in color and a trailing Reset.
func Colorize(color, text string) string {
	return color + text + Reset
}

// Colorf is Colorize over a formatted string.
func Colorf(color, format string, args ...any) string {
	return Colorize(color, fmt.Sprintf(format, args...))
}

// StripANSI drops every CSI sequence from s, leaving the text a player
// would read. An unterminated sequence at the end is kept as is.
func StripANSI(s string) string {
	if !strings.Contains(s, "\033[") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if end := csiEnd(s, i); end > 0 {
			i = end
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// csiEnd returns the index just past the CSI sequence starting at i, or 0
// when none starts there. A sequence ends at its first byte in 0x40..0x7E.
func csiEnd(s string, i int) int {
	if s[i] != '\033' || i+1 >= len(s) || s[i+1] != '[' {
		return 0
	}
	for j := i + 2; j < len(s); j++ {
		if s[j] >= 0x40 && s[j] <= 0x7e {
			return j + 1
		}
	}
	return 0
}
