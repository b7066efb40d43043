package cmd

import (
	"github.com/spf13/cobra"

	"github.com/samsaffron/term-diff/internal/config"
)

// RenderFlags holds the flag variables of a command that renders a diff.
// Each command creates its own instance with its own variables.
type RenderFlags struct {
	CommitStyle      string
	FileStyle        string
	HunkStyle        string
	Width            int
	Color            string
	Theme            string
	SyntaxTheme      string
	HighlightRemoved bool
	WordDiff         bool
	Debug            bool
}

// AddRenderFlags adds every rendering flag to cmd
func AddRenderFlags(cmd *cobra.Command, f *RenderFlags) {
	AddStyleFlags(cmd, &f.CommitStyle, &f.FileStyle, &f.HunkStyle)
	AddWidthFlag(cmd, &f.Width)
	AddColorFlag(cmd, &f.Color)
	AddThemeFlags(cmd, &f.Theme, &f.SyntaxTheme)
	AddHighlightFlags(cmd, &f.HighlightRemoved, &f.WordDiff)
	AddDebugFlag(cmd, &f.Debug)
}

// AddStyleFlags adds --commit-style, --file-style and --hunk-style with completion
func AddStyleFlags(cmd *cobra.Command, commit, file, hunk *string) {
	cmd.Flags().StringVar(commit, "commit-style", "", "Commit header style: plain, box or underline (overrides config)")
	cmd.Flags().StringVar(file, "file-style", "", "File header style: plain, box or underline (overrides config)")
	cmd.Flags().StringVar(hunk, "hunk-style", "", "Hunk header style: plain, box or underline (overrides config)")
	for _, name := range []string{"commit-style", "file-style", "hunk-style"} {
		if err := cmd.RegisterFlagCompletionFunc(name, StyleFlagCompletion); err != nil {
			panic("failed to register " + name + " completion: " + err.Error())
		}
	}
}

// AddWidthFlag adds the --width/-w flag
func AddWidthFlag(cmd *cobra.Command, dest *int) {
	cmd.Flags().IntVarP(dest, "width", "w", 0, "Pad changed lines to this many columns (0 disables padding)")
}

// AddColorFlag adds the --color flag with completion
func AddColorFlag(cmd *cobra.Command, dest *string) {
	cmd.Flags().StringVar(dest, "color", "", "When to use color: auto, always or never")
	if err := cmd.RegisterFlagCompletionFunc("color", ColorFlagCompletion); err != nil {
		panic("failed to register color completion: " + err.Error())
	}
}

// AddThemeFlags adds --theme and --syntax-theme with completion
func AddThemeFlags(cmd *cobra.Command, theme, syntaxTheme *string) {
	cmd.Flags().StringVarP(theme, "theme", "t", "", "Palette preset for headers and backgrounds")
	cmd.Flags().StringVar(syntaxTheme, "syntax-theme", "", "Chroma style for syntax highlighting")
	if err := cmd.RegisterFlagCompletionFunc("theme", ThemeFlagCompletion); err != nil {
		panic("failed to register theme completion: " + err.Error())
	}
	if err := cmd.RegisterFlagCompletionFunc("syntax-theme", SyntaxThemeFlagCompletion); err != nil {
		panic("failed to register syntax-theme completion: " + err.Error())
	}
}

// AddHighlightFlags adds --highlight-removed and --word-diff
func AddHighlightFlags(cmd *cobra.Command, highlightRemoved, wordDiff *bool) {
	cmd.Flags().BoolVar(highlightRemoved, "highlight-removed", false, "Syntax-highlight removed lines too")
	cmd.Flags().BoolVar(wordDiff, "word-diff", true, "Emphasise changed words in replaced lines")
}

// AddDebugFlag adds the --debug/-d flag
func AddDebugFlag(cmd *cobra.Command, dest *bool) {
	cmd.Flags().BoolVarP(dest, "debug", "d", false, "Log syntax selection and buffering to stderr")
}

// Overrides returns the config overrides for the flags the user actually set.
func (f *RenderFlags) Overrides(cmd *cobra.Command) config.Overrides {
	o := config.Overrides{
		CommitStyle: f.CommitStyle,
		FileStyle:   f.FileStyle,
		HunkStyle:   f.HunkStyle,
		Color:       f.Color,
		Theme:       f.Theme,
		SyntaxTheme: f.SyntaxTheme,
	}
	if cmd.Flags().Changed("width") {
		o.Width = &f.Width
	}
	if cmd.Flags().Changed("highlight-removed") {
		o.HighlightRemoved = &f.HighlightRemoved
	}
	if cmd.Flags().Changed("word-diff") {
		o.WordDiff = &f.WordDiff
	}
	return o
}
