package ui

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const tabWidth = 8

// StripANSI removes all terminal escape sequences from a string
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// ANSILen returns the display width of a string, ignoring escape sequences
func ANSILen(s string) int {
	return ansi.StringWidth(s)
}

func advanceColumn(col int, r rune) int {
	switch r {
	case '\t':
		return col + (tabWidth - (col % tabWidth))
	case '\n':
		return 0
	}

	width := runewidth.RuneWidth(r)
	if width < 0 {
		width = 0
	}
	return col + width
}

// DisplayWidth returns the number of terminal columns s occupies when printed
// from column zero. Tabs advance to the next multiple of eight. s must not
// contain escape sequences.
func DisplayWidth(s string) int {
	col := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			col++
			i++
			continue
		}
		col = advanceColumn(col, r)
		i += size
	}
	return col
}
