package stream

import (
	"strings"
	"unicode/utf8"

	"github.com/samsaffron/term-diff/internal/ui"
)

// Prepare replaces the leading diff marker of a hunk body line with a space
// and, when width is positive, right-pads the result to width columns. The
// marker is the whole first rune, so stray non-diff lines stay valid UTF-8.
// Lines are never truncated.
func Prepare(line string, width int) string {
	if line != "" {
		_, size := utf8.DecodeRuneInString(line)
		line = " " + line[size:]
	}
	if width > 0 {
		if pad := width - ui.DisplayWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
	}
	return line
}
