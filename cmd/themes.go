package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samsaffron/term-diff/internal/ui"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List palette presets and syntax themes",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

var languagesCmd = &cobra.Command{
	Use:   "languages [filter]",
	Short: "List languages available for syntax highlighting",
	Long: `List the languages term-diff can highlight. Names listed here are valid
targets for the syntax.map setting.

Examples:
  term-diff languages
  term-diff languages script`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLanguages,
}

func init() {
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(languagesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Palette presets (--theme):")
	for _, name := range ui.PresetThemeNames {
		marker := " "
		if name == ui.DefaultThemeName {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %-12s %s\n", marker, name, ui.PresetThemes[name].Description)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Syntax themes (--syntax-theme):")
	for _, name := range ui.SyntaxThemeNames() {
		marker := " "
		if name == ui.DefaultSyntaxTheme {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %s\n", marker, name)
	}
	return nil
}

func runLanguages(cmd *cobra.Command, args []string) error {
	names := ui.LanguageNames()
	if len(args) == 1 {
		filter := strings.ToLower(args[0])
		var matched []string
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), filter) {
				matched = append(matched, name)
			}
		}
		if len(matched) == 0 {
			if suggestion := ui.Suggest(args[0], names); suggestion != "" {
				return fmt.Errorf("no language matches %q (did you mean %q?)", args[0], suggestion)
			}
			return fmt.Errorf("no language matches %q", args[0])
		}
		names = matched
	}

	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
