package cmd

import (
	"github.com/spf13/cobra"

	"github.com/samsaffron/term-diff/internal/ui"
)

// StyleFlagCompletion completes section style flags
func StyleFlagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(ui.SectionStyleNames, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// ColorFlagCompletion completes --color
func ColorFlagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	modes := []string{string(ui.ColorAuto), string(ui.ColorAlways), string(ui.ColorNever)}
	return filterPrefix(modes, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// ThemeFlagCompletion completes --theme with the palette presets
func ThemeFlagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(ui.PresetThemeNames, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// SyntaxThemeFlagCompletion completes --syntax-theme with chroma style names
func SyntaxThemeFlagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(ui.SyntaxThemeNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
}
