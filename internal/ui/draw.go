package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// SectionStyle selects how a commit, file or hunk header is decorated
type SectionStyle string

const (
	SectionPlain     SectionStyle = "plain"     // no decoration; the raw line is passed through
	SectionBox       SectionStyle = "box"       // bordered block
	SectionUnderline SectionStyle = "underline" // single rule beneath
)

// SectionStyleNames lists the accepted section style values
var SectionStyleNames = []string{string(SectionPlain), string(SectionBox), string(SectionUnderline)}

// ParseSectionStyle validates a configured section style
func ParseSectionStyle(s string) (SectionStyle, error) {
	switch st := SectionStyle(strings.ToLower(strings.TrimSpace(s))); st {
	case SectionPlain, SectionBox, SectionUnderline:
		return st, nil
	default:
		return "", fmt.Errorf("unknown section style %q (want plain, box or underline)", s)
	}
}

// DrawFunc renders a header to w. width is the terminal width used for rules;
// lineBelow extends the bottom edge into a rule spanning that width.
type DrawFunc func(w io.Writer, content string, width int, style lipgloss.Style, lineBelow bool) error

// DrawFuncFor returns the drawing strategy for a decorated section style.
// Plain headers are never drawn, so asking for one is a programming error.
func DrawFuncFor(s SectionStyle) DrawFunc {
	switch s {
	case SectionBox:
		return WriteBoxed
	case SectionUnderline:
		return WriteUnderlined
	default:
		panic(fmt.Sprintf("ui: no draw function for section style %q", s))
	}
}

// WriteBoxed draws content inside a single-line border. Content wider than the
// terminal is truncated with an ellipsis.
func WriteBoxed(w io.Writer, content string, width int, style lipgloss.Style, lineBelow bool) error {
	border := lipgloss.NormalBorder()

	if width > 4 && ANSILen(content)+4 > width {
		content = truncate.StringWithTail(content, uint(width-4), "…")
	}
	inner := ANSILen(content) + 2

	top := border.TopLeft + strings.Repeat(border.Top, inner) + border.TopRight
	middle := style.Render(border.Left) + " " + content + " " + style.Render(border.Right)
	bottom := border.BottomLeft + strings.Repeat(border.Bottom, inner)
	if rest := width - (inner + 2); lineBelow && rest > 0 {
		bottom += border.MiddleBottom + strings.Repeat(border.Bottom, rest)
	} else {
		bottom += border.BottomRight
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", style.Render(top), middle, style.Render(bottom))
	return err
}

// WriteUnderlined writes content followed by a rule. The rule spans the whole
// width when lineBelow is set, otherwise just the content.
func WriteUnderlined(w io.Writer, content string, width int, style lipgloss.Style, lineBelow bool) error {
	ruleWidth := ANSILen(content)
	if lineBelow && width > 0 {
		ruleWidth = width
	}
	if ruleWidth < 1 {
		ruleWidth = 1
	}
	rule := strings.Repeat(lipgloss.NormalBorder().Bottom, ruleWidth)

	_, err := fmt.Fprintf(w, "%s\n%s\n", content, style.Render(rule))
	return err
}
