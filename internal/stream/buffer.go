package stream

import "github.com/samsaffron/term-diff/internal/ui"

// HunkBuffer holds the pending run of removed lines and the run of added lines
// that follows it, so the pair can be painted together.
type HunkBuffer struct {
	Minus []string
	Plus  []string
}

// PushMinus appends a prepared removed line.
func (b *HunkBuffer) PushMinus(line string) {
	b.Minus = append(b.Minus, line)
}

// PushPlus appends a prepared added line.
func (b *HunkBuffer) PushPlus(line string) {
	b.Plus = append(b.Plus, line)
}

// Empty reports whether nothing is pending.
func (b *HunkBuffer) Empty() bool {
	return len(b.Minus) == 0 && len(b.Plus) == 0
}

// Flush hands the pending lines to r as one paired batch and clears the
// buffer. An empty buffer produces no call. It reports whether anything was
// painted.
func (b *HunkBuffer) Flush(r Renderer, syntax *ui.Highlighter) bool {
	if b.Empty() {
		return false
	}
	minus, plus := b.Minus, b.Plus
	b.Minus, b.Plus = nil, nil
	r.PaintPaired(minus, plus, syntax)
	return true
}
