// Package paint renders classified diff lines to a terminal with lipgloss.
package paint

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/samsaffron/term-diff/internal/stream"
	"github.com/samsaffron/term-diff/internal/ui"
)

// Options controls painting.
type Options struct {
	// Width is the terminal width used for header rules and box truncation.
	// 0 means unknown: rules stop at the header content.
	Width int

	// WordDiff emphasises the changed tokens of paired removed and added lines.
	WordDiff bool

	// HighlightRemoved applies syntax colours to removed lines as well as
	// context and added lines.
	HighlightRemoved bool
}

// Painter implements stream.Renderer. Painted body lines are held until the
// next header, passthrough line or Flush; the driver flushes after every
// painted context line and every paired run.
type Painter struct {
	w      io.Writer
	styles *ui.Styles
	opts   Options
	buf    strings.Builder
}

var _ stream.Renderer = (*Painter)(nil)

// New creates a painter writing to w with the given styles.
func New(w io.Writer, styles *ui.Styles, opts Options) *Painter {
	return &Painter{w: w, styles: styles, opts: opts}
}

// Header draws a commit, file or hunk header.
func (p *Painter) Header(h stream.Header) error {
	if err := p.Flush(); err != nil {
		return err
	}

	draw := ui.DrawFuncFor(h.Style)
	switch h.Region {
	case stream.RegionCommit:
		content := p.styles.Commit.Render(ui.StripANSI(h.Text))
		return draw(p.w, content, p.opts.Width, p.styles.Commit, true)

	case stream.RegionFile:
		content := p.styles.File.Render(h.Text)
		return draw(p.w, content, p.opts.Width, p.styles.File, true)

	default:
		if fragment := strings.TrimSpace(h.Text); fragment != "" {
			content := h.Syntax.Highlight(p.styles.Renderer(), fragment)
			if err := draw(p.w, content, p.opts.Width, p.styles.Hunk, false); err != nil {
				return err
			}
		}
		// the line number sits below a blank line
		if h.LineNumber != "" {
			if _, err := fmt.Fprintf(p.w, "\n%s\n", p.styles.LineNumber.Render(h.LineNumber)); err != nil {
				return err
			}
		}
		return nil
	}
}

// Paint paints unchanged context lines.
func (p *Painter) Paint(lines []string, syntax *ui.Highlighter) {
	for _, line := range lines {
		p.writeLine(syntax.Spans(line), p.styles.Context, p.styles.Context, nil)
	}
}

// PaintPaired paints a run of removed lines followed by the run of added
// lines that replaced it. The i-th removed line is compared with the i-th
// added line to find emphasised tokens.
func (p *Painter) PaintPaired(minus, plus []string, syntax *ui.Highlighter) {
	minusEmph := make([][]byteRange, len(minus))
	plusEmph := make([][]byteRange, len(plus))
	if p.opts.WordDiff {
		for i := 0; i < len(minus) && i < len(plus); i++ {
			minusEmph[i], plusEmph[i] = emphasis(trimPadding(minus[i]), trimPadding(plus[i]))
		}
	}

	for i, line := range minus {
		spans := []ui.Span{{Text: line}}
		if p.opts.HighlightRemoved {
			spans = syntax.Spans(line)
		}
		p.writeLine(spans, p.styles.Minus, p.styles.MinusEmph, minusEmph[i])
	}
	for i, line := range plus {
		p.writeLine(syntax.Spans(line), p.styles.Plus, p.styles.PlusEmph, plusEmph[i])
	}
}

// Passthrough writes line unchanged, after anything already painted.
func (p *Painter) Passthrough(line string) error {
	if err := p.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(p.w, line+"\n")
	return err
}

// Flush writes painted lines to the underlying writer.
func (p *Painter) Flush() error {
	if p.buf.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(p.w, p.buf.String())
	p.buf.Reset()
	return err
}

// writeLine renders spans on base, switching to emph inside the given ranges.
// Spans must concatenate to the line the ranges were computed on.
func (p *Painter) writeLine(spans []ui.Span, base, emph lipgloss.Style, ranges []byteRange) {
	pos := 0
	for _, span := range spans {
		text := span.Text
		for text != "" {
			inside, n := classifyRun(pos, len(text), ranges)
			st := base
			if inside {
				st = emph
			}
			p.buf.WriteString(span.Apply(st).Render(text[:n]))
			text = text[n:]
			pos += n
		}
	}
	p.buf.WriteByte('\n')
}

// classifyRun reports whether the byte at pos lies in one of ranges, and how
// many of the next limit bytes share that answer.
func classifyRun(pos, limit int, ranges []byteRange) (bool, int) {
	for _, r := range ranges {
		switch {
		case pos < r.start:
			return false, min(limit, r.start-pos)
		case pos < r.end:
			return true, min(limit, r.end-pos)
		}
	}
	return false, limit
}

// trimPadding drops the trailing padding added for the configured width so it
// never counts as a change.
func trimPadding(line string) string {
	return strings.TrimRight(line, " ")
}
