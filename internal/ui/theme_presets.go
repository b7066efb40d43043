package ui

import "sort"

// DefaultThemeName is the preset used when no theme is configured
const DefaultThemeName = "gruvbox"

// ThemePreset represents a predefined color theme
type ThemePreset struct {
	Name        string
	Description string
	Config      ThemeConfig
}

// PresetThemeNames defines the display order of themes
var PresetThemeNames = []string{
	"gruvbox",
	"dracula",
	"nord",
	"solarized",
	"monokai",
	"classic",
}

// PresetThemes contains all predefined themes
var PresetThemes = map[string]ThemePreset{
	"classic": {
		Name:        "classic",
		Description: "ANSI 256 colors for basic terminals",
		Config: ThemeConfig{
			CommitHeader: "11", // yellow
			FileHeader:   "12", // bright blue
			HunkHeader:   "4",  // blue
			LineNumber:   "4",  // blue
			MinusBg:      "52", // dark red
			PlusBg:       "22", // dark green
			MinusEmphBg:  "88", // red
			PlusEmphBg:   "28", // green
		},
	},
	"dracula": {
		Name:        "dracula",
		Description: "Popular dark theme with purple accents",
		Config: ThemeConfig{
			CommitHeader: "#f1fa8c", // yellow
			FileHeader:   "#bd93f9", // purple
			HunkHeader:   "#8be9fd", // cyan
			LineNumber:   "#6272a4", // comment
			MinusBg:      "#3c2a35",
			PlusBg:       "#253a2f",
			MinusEmphBg:  "#6b2e3f",
			PlusEmphBg:   "#2f6140",
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Arctic, north-bluish color palette",
		Config: ThemeConfig{
			CommitHeader: "#ebcb8b", // aurora yellow
			FileHeader:   "#88c0d0", // frost cyan
			HunkHeader:   "#81a1c1", // frost blue
			LineNumber:   "#4c566a", // polar night
			MinusBg:      "#3b3040",
			PlusBg:       "#2f3b35",
			MinusEmphBg:  "#5c3a44",
			PlusEmphBg:   "#44573f",
		},
	},
	"solarized": {
		Name:        "solarized",
		Description: "Precision colors for machines and people",
		Config: ThemeConfig{
			CommitHeader: "#b58900", // yellow
			FileHeader:   "#268bd2", // blue
			HunkHeader:   "#2aa198", // cyan
			LineNumber:   "#586e75", // base01
			MinusBg:      "#3a1f1d",
			PlusBg:       "#1f3320",
			MinusEmphBg:  "#5e2a26",
			PlusEmphBg:   "#2e5228",
		},
	},
	"monokai": {
		Name:        "monokai",
		Description: "Vibrant colors inspired by Sublime Text",
		Config: ThemeConfig{
			CommitHeader: "#e6db74", // yellow
			FileHeader:   "#66d9ef", // cyan
			HunkHeader:   "#ae81ff", // purple
			LineNumber:   "#75715e", // comment
			MinusBg:      "#3f0001",
			PlusBg:       "#002800",
			MinusEmphBg:  "#901011",
			PlusEmphBg:   "#006000",
		},
	},
	"gruvbox": {
		Name:        "gruvbox",
		Description: "Retro groove color scheme (default)",
		Config: ThemeConfig{
			CommitHeader: "#fabd2f", // yellow
			FileHeader:   "#83a598", // aqua
			HunkHeader:   "#458588", // blue
			LineNumber:   "#928374", // gray
			MinusBg:      "#3c1f1e", // dark bg with red tint
			PlusBg:       "#1f2d1b", // dark bg with green tint
			MinusEmphBg:  "#6e2a25",
			PlusEmphBg:   "#3d5a2a",
		},
	},
}

// GetPresetTheme returns a preset by name, or nil if not found
func GetPresetTheme(name string) *ThemePreset {
	if preset, ok := PresetThemes[name]; ok {
		return &preset
	}
	return nil
}

// ResolveTheme builds the palette for preset name with overrides applied on top.
// An unknown preset name is an error carrying a suggestion.
func ResolveTheme(name string, overrides ThemeConfig) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}
	preset := GetPresetTheme(name)
	if preset == nil {
		names := append([]string(nil), PresetThemeNames...)
		sort.Strings(names)
		return nil, unknownNameError("theme", name, names)
	}
	return ThemeFromConfig(overrides.Merge(preset.Config)), nil
}
