package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines the color palette for rendered diffs
type Theme struct {
	// Section headers
	CommitHeader lipgloss.Color // commit boxes and their rule
	FileHeader   lipgloss.Color // file description and its rule
	HunkHeader   lipgloss.Color // hunk fragment box
	LineNumber   lipgloss.Color // line number printed under a hunk header

	// Diff backgrounds
	MinusBg     lipgloss.Color // removed lines
	PlusBg      lipgloss.Color // added lines
	MinusEmphBg lipgloss.Color // changed tokens within a removed line
	PlusEmphBg  lipgloss.Color // changed tokens within an added line
}

// DefaultTheme returns the default color theme (gruvbox)
func DefaultTheme() *Theme {
	return ThemeFromConfig(PresetThemes[DefaultThemeName].Config)
}

// ThemeConfig mirrors config.ColorsConfig for applying overrides
type ThemeConfig struct {
	CommitHeader string
	FileHeader   string
	HunkHeader   string
	LineNumber   string
	MinusBg      string
	PlusBg       string
	MinusEmphBg  string
	PlusEmphBg   string
}

// ThemeFromConfig creates a theme from cfg. Empty fields keep the color of the
// default preset.
func ThemeFromConfig(cfg ThemeConfig) *Theme {
	base := PresetThemes[DefaultThemeName].Config
	pick := func(v, fallback string) lipgloss.Color {
		if v != "" {
			return lipgloss.Color(v)
		}
		return lipgloss.Color(fallback)
	}

	return &Theme{
		CommitHeader: pick(cfg.CommitHeader, base.CommitHeader),
		FileHeader:   pick(cfg.FileHeader, base.FileHeader),
		HunkHeader:   pick(cfg.HunkHeader, base.HunkHeader),
		LineNumber:   pick(cfg.LineNumber, base.LineNumber),
		MinusBg:      pick(cfg.MinusBg, base.MinusBg),
		PlusBg:       pick(cfg.PlusBg, base.PlusBg),
		MinusEmphBg:  pick(cfg.MinusEmphBg, base.MinusEmphBg),
		PlusEmphBg:   pick(cfg.PlusEmphBg, base.PlusEmphBg),
	}
}

// Merge returns cfg with its empty fields filled from other.
func (cfg ThemeConfig) Merge(other ThemeConfig) ThemeConfig {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&cfg.CommitHeader, other.CommitHeader)
	fill(&cfg.FileHeader, other.FileHeader)
	fill(&cfg.HunkHeader, other.HunkHeader)
	fill(&cfg.LineNumber, other.LineNumber)
	fill(&cfg.MinusBg, other.MinusBg)
	fill(&cfg.PlusBg, other.PlusBg)
	fill(&cfg.MinusEmphBg, other.MinusEmphBg)
	fill(&cfg.PlusEmphBg, other.PlusEmphBg)
	return cfg
}

// ColorMode selects how the terminal color profile is chosen.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

// NewRenderer creates a lipgloss renderer for w. "auto" lets termenv detect
// the profile from w; "always" forces true color; "never" strips all styling.
func NewRenderer(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Styles holds the lipgloss styles used to paint a diff, bound to a renderer
type Styles struct {
	renderer *lipgloss.Renderer

	// Header styles
	Commit     lipgloss.Style
	File       lipgloss.Style
	Hunk       lipgloss.Style
	LineNumber lipgloss.Style

	// Body styles
	Context   lipgloss.Style // unchanged lines
	Minus     lipgloss.Style // removed lines
	Plus      lipgloss.Style // added lines
	MinusEmph lipgloss.Style // changed tokens in removed lines
	PlusEmph  lipgloss.Style // changed tokens in added lines
}

// NewStyles creates styles for theme bound to renderer r
func NewStyles(r *lipgloss.Renderer, theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	// Body text must keep its tabs: padding was computed with tab stops
	body := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return &Styles{
		renderer: r,

		Commit: r.NewStyle().
			Foreground(theme.CommitHeader),

		File: r.NewStyle().
			Bold(true).
			Foreground(theme.FileHeader),

		Hunk: r.NewStyle().
			Foreground(theme.HunkHeader),

		LineNumber: r.NewStyle().
			Foreground(theme.LineNumber),

		Context: body,

		Minus: body.
			Background(theme.MinusBg),

		Plus: body.
			Background(theme.PlusBg),

		MinusEmph: body.
			Background(theme.MinusEmphBg),

		PlusEmph: body.
			Background(theme.PlusEmphBg),
	}
}

// Renderer returns the renderer the styles are bound to
func (s *Styles) Renderer() *lipgloss.Renderer {
	return s.renderer
}

