package ui

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// DefaultSyntaxTheme is the chroma style used when none is configured.
// Monokai has good contrast on dark backgrounds.
const DefaultSyntaxTheme = "monokai"

// Highlighter tokenises source lines of one language. A nil *Highlighter is
// valid and means "no syntax context": every method degrades to plain text.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// Span is one syntax token of a highlighted line.
type Span struct {
	Text       string
	Foreground lipgloss.TerminalColor // nil when the theme leaves it unset
	Bold       bool
	Italic     bool
	Underline  bool
}

// NewHighlighter creates a highlighter for the given file path.
// Returns nil if the language is not recognized.
func NewHighlighter(filePath string, style *chroma.Style) *Highlighter {
	lexer := lexers.Match(filePath)
	if lexer == nil {
		return nil
	}
	return newHighlighter(lexer, style)
}

func newHighlighter(lexer chroma.Lexer, style *chroma.Style) *Highlighter {
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		lexer: chroma.Coalesce(lexer),
		style: style,
	}
}

// Name returns the language name, or "" for a nil highlighter.
func (h *Highlighter) Name() string {
	if h == nil {
		return ""
	}
	return h.lexer.Config().Name
}

// Spans splits line into styled tokens. The token texts always concatenate
// back to line; when tokenising fails the whole line is one unstyled span.
func (h *Highlighter) Spans(line string) []Span {
	plain := []Span{{Text: line}}
	if h == nil || line == "" {
		return plain
	}

	iterator, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return plain
	}

	var spans []Span
	var total strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		// Lexers may append newline tokens the input never had
		value := strings.ReplaceAll(token.Value, "\n", "")
		if value == "" {
			continue
		}
		total.WriteString(value)

		entry := h.style.Get(token.Type)
		span := Span{
			Text:      value,
			Bold:      entry.Bold == chroma.Yes,
			Italic:    entry.Italic == chroma.Yes,
			Underline: entry.Underline == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			span.Foreground = lipgloss.Color(entry.Colour.String())
		}
		spans = append(spans, span)
	}

	if total.String() != line {
		return plain
	}
	return spans
}

// Highlight renders line with syntax foreground colours only.
func (h *Highlighter) Highlight(r *lipgloss.Renderer, line string) string {
	var b strings.Builder
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	for _, span := range h.Spans(line) {
		b.WriteString(span.Apply(base).Render(span.Text))
	}
	return b.String()
}

// Apply layers the span's foreground and font attributes onto base.
func (s Span) Apply(base lipgloss.Style) lipgloss.Style {
	st := base
	if s.Foreground != nil {
		st = st.Foreground(s.Foreground)
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	return st
}

// SyntaxRegistry resolves file extensions to highlighters. Lookups are cached
// per extension; a registry is safe for concurrent use.
type SyntaxRegistry struct {
	style   *chroma.Style
	aliases map[string]string

	mu    sync.Mutex
	cache map[string]*Highlighter
}

// NewSyntaxRegistry builds a registry using the named chroma style. aliases
// remaps extensions to language names before lookup (e.g. "tpl" -> "html").
func NewSyntaxRegistry(theme string, aliases map[string]string) (*SyntaxRegistry, error) {
	style, err := ResolveSyntaxTheme(theme)
	if err != nil {
		return nil, err
	}
	return &SyntaxRegistry{
		style:   style,
		aliases: aliases,
		cache:   make(map[string]*Highlighter),
	}, nil
}

// FindSyntax returns the highlighter for a file extension, or nil when the
// extension is empty or no grammar matches it.
func (r *SyntaxRegistry) FindSyntax(ext string) *Highlighter {
	if ext == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.cache[ext]; ok {
		return h
	}

	// viper lowercases map keys
	name := ext
	if alias, ok := r.aliases[strings.ToLower(ext)]; ok && alias != "" {
		name = alias
	}
	var h *Highlighter
	if lexer := lexers.Get(name); lexer != nil {
		h = newHighlighter(lexer, r.style)
	}
	r.cache[ext] = h
	return h
}

// ResolveSyntaxTheme looks up a chroma style by name. Unknown names produce an
// error suggesting the closest match.
func ResolveSyntaxTheme(name string) (*chroma.Style, error) {
	if name == "" {
		name = DefaultSyntaxTheme
	}
	if style, ok := styles.Registry[name]; ok {
		return style, nil
	}
	return nil, unknownNameError("syntax theme", name, SyntaxThemeNames())
}

// SyntaxThemeNames lists the available chroma styles in sorted order.
func SyntaxThemeNames() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

// LanguageNames lists the languages chroma can highlight.
func LanguageNames() []string {
	names := lexers.Names(false)
	sort.Strings(names)
	return names
}

// KnownLanguage reports whether name resolves to a chroma lexer.
func KnownLanguage(name string) bool {
	return lexers.Get(name) != nil
}

// unknownNameError builds an "unknown X" error with a fuzzy "did you mean" hint.
func unknownNameError(kind, name string, candidates []string) error {
	if suggestion := Suggest(name, candidates); suggestion != "" {
		return fmt.Errorf("unknown %s %q (did you mean %q?)", kind, name, suggestion)
	}
	return fmt.Errorf("unknown %s %q", kind, name)
}

// Suggest returns the best fuzzy match for name among candidates, or "".
func Suggest(name string, candidates []string) string {
	if name == "" {
		return ""
	}
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
