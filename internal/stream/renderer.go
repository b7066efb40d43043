package stream

import "github.com/samsaffron/term-diff/internal/ui"

// Region identifies which kind of header is being drawn.
type Region int

const (
	RegionCommit Region = iota
	RegionFile
	RegionHunk
)

func (r Region) String() string {
	switch r {
	case RegionCommit:
		return "commit"
	case RegionFile:
		return "file"
	case RegionHunk:
		return "hunk"
	default:
		return "unknown"
	}
}

// Header describes a section header to draw.
type Header struct {
	Region Region
	Style  ui.SectionStyle // never ui.SectionPlain

	// Text is the raw commit line, the file change description, or the hunk's
	// code fragment.
	Text string

	// LineNumber is the new-file start line of a hunk; empty otherwise.
	LineNumber string

	// Syntax is the current file's syntax context, used for hunk fragments.
	Syntax *ui.Highlighter
}

// Renderer paints and writes everything the driver produces. Paint and
// PaintPaired accumulate output; Header and Passthrough write whatever has
// accumulated before writing their own output, so order is preserved.
type Renderer interface {
	// Header draws a section header.
	Header(h Header) error

	// Paint paints unpaired lines, one output line each.
	Paint(lines []string, syntax *ui.Highlighter)

	// PaintPaired paints a removed run and the added run that followed it.
	// Either side may be empty.
	PaintPaired(minus, plus []string, syntax *ui.Highlighter)

	// Passthrough writes an input line verbatim.
	Passthrough(line string) error

	// Flush writes accumulated painted output to the sink.
	Flush() error
}

// SyntaxFinder resolves a file extension to a syntax context. It returns nil
// for unknown extensions.
type SyntaxFinder interface {
	FindSyntax(ext string) *ui.Highlighter
}
