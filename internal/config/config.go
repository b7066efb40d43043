package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/samsaffron/term-diff/internal/ui"
)

// EnvPrefix prefixes environment overrides, e.g. TERM_DIFF_THEME=nord.
const EnvPrefix = "TERM_DIFF"

type Config struct {
	CommitStyle      string       `mapstructure:"commit_style" yaml:"commit_style"`
	FileStyle        string       `mapstructure:"file_style" yaml:"file_style"`
	HunkStyle        string       `mapstructure:"hunk_style" yaml:"hunk_style"`
	Width            int          `mapstructure:"width" yaml:"width"` // pad body lines to this many columns (0 = off)
	Color            string       `mapstructure:"color" yaml:"color"` // auto, always or never
	Theme            string       `mapstructure:"theme" yaml:"theme"`
	SyntaxTheme      string       `mapstructure:"syntax_theme" yaml:"syntax_theme"`
	HighlightRemoved bool         `mapstructure:"highlight_removed" yaml:"highlight_removed"`
	WordDiff         bool         `mapstructure:"word_diff" yaml:"word_diff"`
	Syntax           SyntaxConfig `mapstructure:"syntax" yaml:"syntax"`
	Colors           ColorsConfig `mapstructure:"colors" yaml:"colors"`
}

// SyntaxConfig tunes how files are mapped to languages
type SyntaxConfig struct {
	Map    map[string]string `mapstructure:"map" yaml:"map,omitempty"`       // extension -> language, e.g. tpl: html
	Ignore []string          `mapstructure:"ignore" yaml:"ignore,omitempty"` // doublestar globs that get no highlighting
}

// ColorsConfig overrides individual palette colors
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ColorsConfig struct {
	CommitHeader string `mapstructure:"commit_header" yaml:"commit_header"`
	FileHeader   string `mapstructure:"file_header" yaml:"file_header"`
	HunkHeader   string `mapstructure:"hunk_header" yaml:"hunk_header"`
	LineNumber   string `mapstructure:"line_number" yaml:"line_number"`
	MinusBg      string `mapstructure:"minus_bg" yaml:"minus_bg"`
	PlusBg       string `mapstructure:"plus_bg" yaml:"plus_bg"`
	MinusEmphBg  string `mapstructure:"minus_emph_bg" yaml:"minus_emph_bg"`
	PlusEmphBg   string `mapstructure:"plus_emph_bg" yaml:"plus_emph_bg"`
}

// ThemeConfig converts the overrides for ui.ResolveTheme
func (c ColorsConfig) ThemeConfig() ui.ThemeConfig {
	return ui.ThemeConfig{
		CommitHeader: c.CommitHeader,
		FileHeader:   c.FileHeader,
		HunkHeader:   c.HunkHeader,
		LineNumber:   c.LineNumber,
		MinusBg:      c.MinusBg,
		PlusBg:       c.PlusBg,
		MinusEmphBg:  c.MinusEmphBg,
		PlusEmphBg:   c.PlusEmphBg,
	}
}

// Keys lists every scalar config key, for completion and validation of
// "config set".
var Keys = []string{
	"commit_style",
	"file_style",
	"hunk_style",
	"width",
	"color",
	"theme",
	"syntax_theme",
	"highlight_removed",
	"word_diff",
	"colors.commit_header",
	"colors.file_header",
	"colors.hunk_header",
	"colors.line_number",
	"colors.minus_bg",
	"colors.plus_bg",
	"colors.minus_emph_bg",
	"colors.plus_emph_bg",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("commit_style", string(ui.SectionBox))
	v.SetDefault("file_style", string(ui.SectionUnderline))
	v.SetDefault("hunk_style", string(ui.SectionBox))
	v.SetDefault("width", 0)
	v.SetDefault("color", string(ui.ColorAuto))
	v.SetDefault("theme", ui.DefaultThemeName)
	v.SetDefault("syntax_theme", ui.DefaultSyntaxTheme)
	v.SetDefault("highlight_removed", false)
	v.SetDefault("word_diff", true)
	v.SetDefault("syntax.map", map[string]string{})
	v.SetDefault("syntax.ignore", []string{})
	// colors.* default to empty, inheriting from the theme
	for _, key := range Keys {
		if strings.HasPrefix(key, "colors.") {
			v.SetDefault(key, "")
		}
	}
}

// Load reads the config file from the config directory, falling back to
// defaults when there is none. Environment variables override the file.
func Load() (*Config, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}
	return LoadFrom(configDir)
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Overrides holds command-line values. Empty strings and nil pointers leave
// the loaded value alone.
type Overrides struct {
	CommitStyle      string
	FileStyle        string
	HunkStyle        string
	Color            string
	Theme            string
	SyntaxTheme      string
	Width            *int
	HighlightRemoved *bool
	WordDiff         *bool
}

// ApplyOverrides applies command-line overrides to the config.
func (c *Config) ApplyOverrides(o Overrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.CommitStyle, o.CommitStyle)
	set(&c.FileStyle, o.FileStyle)
	set(&c.HunkStyle, o.HunkStyle)
	set(&c.Color, o.Color)
	set(&c.Theme, o.Theme)
	set(&c.SyntaxTheme, o.SyntaxTheme)
	if o.Width != nil {
		c.Width = *o.Width
	}
	if o.HighlightRemoved != nil {
		c.HighlightRemoved = *o.HighlightRemoved
	}
	if o.WordDiff != nil {
		c.WordDiff = *o.WordDiff
	}
}

// Validate checks every enumerated setting and returns the first problem.
// Language map entries naming unknown languages are only logged, since the
// rest of the config is still usable.
func (c *Config) Validate(logger *slog.Logger) error {
	for _, s := range []struct{ key, value string }{
		{"commit_style", c.CommitStyle},
		{"file_style", c.FileStyle},
		{"hunk_style", c.HunkStyle},
	} {
		if _, err := ui.ParseSectionStyle(s.value); err != nil {
			return fmt.Errorf("%s: %w", s.key, err)
		}
	}
	if _, err := ui.ParseColorMode(c.Color); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if c.Width < 0 {
		return fmt.Errorf("width: must not be negative, got %d", c.Width)
	}
	if _, err := ui.ResolveTheme(c.Theme, c.Colors.ThemeConfig()); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	if _, err := ui.ResolveSyntaxTheme(c.SyntaxTheme); err != nil {
		return fmt.Errorf("syntax_theme: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	for ext, lang := range c.Syntax.Map {
		if !ui.KnownLanguage(lang) {
			logger.Warn("unknown language in syntax.map", "extension", ext, "language", lang,
				"suggestion", ui.Suggest(lang, ui.LanguageNames()))
		}
	}
	return nil
}

// GetConfigDir returns the XDG config directory for term-diff.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "term-diff"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "term-diff"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// DefaultContent is the commented config written by "config reset" and by
// "config edit" when no file exists yet.
func DefaultContent() string {
	return `# term-diff configuration
# Run 'term-diff config edit' to modify

# Header decoration: plain, box or underline
commit_style: box
file_style: underline
hunk_style: box

# Pad changed lines to this many columns so backgrounds line up (0 = off)
width: 0

# auto, always or never
color: auto

# Palette preset: gruvbox, dracula, nord, solarized, monokai, classic
theme: gruvbox

# Any chroma style, see 'term-diff themes'
syntax_theme: monokai

highlight_removed: false
word_diff: true

syntax:
  # Highlight extensions as another language
  map: {}
  #   tpl: html
  #   conf: ini
  # Files matching these globs are not highlighted
  ignore: []
  #   - "vendor/**"
  #   - "**/*.min.js"

# Per-color overrides (ANSI 0-255 or hex #RRGGBB)
# colors:
#   commit_header: "#fabd2f"
#   minus_bg: "52"
#   plus_bg: "22"
`
}
