package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/samsaffron/term-diff/internal/gitdiff"
	"github.com/samsaffron/term-diff/internal/ui"
)

// Options configures a Driver.
type Options struct {
	// Header styles per region. Empty means ui.SectionPlain.
	CommitStyle ui.SectionStyle
	FileStyle   ui.SectionStyle
	HunkStyle   ui.SectionStyle

	// Width pads hunk body lines to a fixed number of columns; 0 disables padding.
	Width int

	// Syntax resolves file extensions to syntax contexts. Nil disables syntax
	// selection, and with it hunk body painting.
	Syntax SyntaxFinder

	// IgnoreSyntax lists doublestar patterns; files whose old or new path
	// matches one get no syntax context.
	IgnoreSyntax []string

	Logger *slog.Logger
}

// Driver runs the line classification state machine over one diff stream.
// A Driver is single-use and not safe for concurrent use.
type Driver struct {
	opts   Options
	out    Renderer
	logger *slog.Logger

	state  State
	buf    HunkBuffer
	syntax *ui.Highlighter
}

// New creates a driver writing through out.
func New(opts Options, out Renderer) *Driver {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	for _, st := range []*ui.SectionStyle{&opts.CommitStyle, &opts.FileStyle, &opts.HunkStyle} {
		if *st == "" {
			*st = ui.SectionPlain
		}
	}

	var patterns []string
	for _, p := range opts.IgnoreSyntax {
		if !doublestar.ValidatePattern(p) {
			opts.Logger.Warn("ignoring invalid syntax ignore pattern", "pattern", p)
			continue
		}
		patterns = append(patterns, p)
	}
	opts.IgnoreSyntax = patterns

	return &Driver{
		opts:   opts,
		out:    out,
		logger: opts.Logger,
		state:  StateUnknown,
	}
}

// State returns the state after the most recent line.
func (d *Driver) State() State {
	return d.state
}

// Syntax returns the syntax context of the current file, or nil.
func (d *Driver) Syntax() *ui.Highlighter {
	return d.syntax
}

func (d *Driver) env() Env {
	return Env{
		HasSyntax:   d.syntax != nil,
		CommitStyle: d.opts.CommitStyle,
		FileStyle:   d.opts.FileStyle,
		HunkStyle:   d.opts.HunkStyle,
	}
}

// ProcessLine classifies one input line (without its trailing newline) and
// performs the resulting actions. raw may contain terminal escape sequences;
// they are ignored for classification and kept for passthrough output.
func (d *Driver) ProcessLine(raw string) error {
	line := ui.StripANSI(raw)
	t := Classify(d.state, line, d.env())
	d.state = t.Next

	for _, action := range t.Actions {
		if err := d.apply(action, raw, line); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) apply(action Action, raw, line string) error {
	switch action {
	case ActionFlush:
		return d.flush()
	case ActionSelectSyntax:
		d.selectSyntax(line)
	case ActionDrawHeader:
		if err := d.out.Header(d.header(raw, line)); err != nil {
			return fmt.Errorf("draw %s header: %w", d.region(), err)
		}
	case ActionEmitRaw:
		if err := d.out.Passthrough(raw); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	case ActionSuppress:
	case ActionPushMinus:
		d.buf.PushMinus(Prepare(line, d.opts.Width))
	case ActionPushPlus:
		d.buf.PushPlus(Prepare(line, d.opts.Width))
	case ActionPaintLine:
		d.out.Paint([]string{Prepare(line, d.opts.Width)}, d.syntax)
		return d.emit()
	}
	return nil
}

// flush paints the buffered run, if any, and writes it out so that at most
// one removed/added run is held in memory.
func (d *Driver) flush() error {
	minus, plus := len(d.buf.Minus), len(d.buf.Plus)
	if !d.buf.Flush(d.out, d.syntax) {
		return nil
	}
	d.logger.Debug("flushed hunk buffer", "minus", minus, "plus", plus)
	return d.emit()
}

// emit pushes painted output to the sink.
func (d *Driver) emit() error {
	if err := d.out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (d *Driver) region() Region {
	switch d.state {
	case StateCommitMeta:
		return RegionCommit
	case StateFileMeta:
		return RegionFile
	default:
		return RegionHunk
	}
}

func (d *Driver) header(raw, line string) Header {
	h := Header{Region: d.region(), Syntax: d.syntax}
	switch h.Region {
	case RegionCommit:
		h.Style = d.opts.CommitStyle
		h.Text = raw
	case RegionFile:
		h.Style = d.opts.FileStyle
		h.Text = gitdiff.FileChangeDescription(line)
	case RegionHunk:
		h.Style = d.opts.HunkStyle
		h.Text, h.LineNumber = gitdiff.ParseHunkHeader(line)
	}
	return h
}

func (d *Driver) selectSyntax(line string) {
	d.syntax = nil
	if d.opts.Syntax == nil {
		return
	}

	ext, ok := gitdiff.FileExtension(line)
	if !ok {
		d.logger.Debug("no common file extension", "line", line)
		return
	}
	if pattern, ignored := d.ignored(line); ignored {
		d.logger.Debug("syntax ignored by pattern", "pattern", pattern)
		return
	}

	d.syntax = d.opts.Syntax.FindSyntax(ext)
	d.logger.Debug("selected syntax", "extension", ext, "syntax", d.syntax.Name())
}

func (d *Driver) ignored(line string) (string, bool) {
	if len(d.opts.IgnoreSyntax) == 0 {
		return "", false
	}
	oldPath, newPath, ok := gitdiff.FilePaths(line)
	if !ok {
		return "", false
	}
	for _, pattern := range d.opts.IgnoreSyntax {
		for _, p := range []string{oldPath, newPath} {
			if p == "" || p == gitdiff.NullPath {
				continue
			}
			if match, _ := doublestar.Match(pattern, p); match {
				return pattern, true
			}
		}
	}
	return "", false
}

// Close paints anything still buffered and flushes the renderer. It must be
// called once the input is exhausted.
func (d *Driver) Close() error {
	if err := d.flush(); err != nil {
		return err
	}
	return d.emit()
}

// Run processes every line of lines and then closes the driver.
func (d *Driver) Run(lines iter.Seq[string]) error {
	for line := range lines {
		if err := d.ProcessLine(line); err != nil {
			return err
		}
	}
	return d.Close()
}

// RunReader processes newline-delimited input from r and then closes the
// driver. Lines may be arbitrarily long; a final line without a newline is
// still processed.
func (d *Driver) RunReader(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if perr := d.ProcessLine(strings.TrimSuffix(line, "\n")); perr != nil {
				return perr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
	return d.Close()
}

// Lines adapts a slice to the sequence Run consumes.
func Lines(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}
