package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/samsaffron/term-diff/internal/config"
	"github.com/samsaffron/term-diff/internal/paint"
	"github.com/samsaffron/term-diff/internal/stream"
	"github.com/samsaffron/term-diff/internal/ui"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=..."
var Version = "dev"

var rootFlags RenderFlags

var rootCmd = &cobra.Command{
	Use:   "term-diff [file]",
	Short: "Syntax-highlighting pager for git diff output",
	Long: `term-diff reads git diff, git log -p or git show output and prints it
with syntax highlighting, decorated headers and word-level emphasis.

Examples:
  git diff | term-diff
  git log -p | term-diff --hunk-style underline
  term-diff changes.patch
  term-diff files old.go new.go          # diff two files directly

  term-diff config                       # view configuration
  term-diff config completion zsh        # shell completions`,
	Args:              cobra.MaximumNArgs(1),
	Version:           Version,
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE:              runRoot,
}

func init() {
	AddRenderFlags(rootCmd, &rootFlags)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return renderDiff(cmd, cmd.InOrStdin(), &rootFlags)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open diff: %w", err)
	}
	defer f.Close()
	return renderDiff(cmd, f, &rootFlags)
}

// renderDiff loads the configuration, applies flags and streams in through
// the driver to the command's output.
func renderDiff(cmd *cobra.Command, in io.Reader, flags *RenderFlags) error {
	logger := newLogger(cmd.ErrOrStderr(), flags.Debug)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.ApplyOverrides(flags.Overrides(cmd))
	if err := cfg.Validate(logger); err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	driver, err := newDriver(cfg, cmd.OutOrStdout(), out, logger)
	if err != nil {
		return err
	}
	if err := driver.RunReader(in); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// newDriver wires a driver and painter from cfg. tty is the real output,
// used to detect colour support and terminal width; out is where painted
// text is written.
func newDriver(cfg *config.Config, tty, out io.Writer, logger *slog.Logger) (*stream.Driver, error) {
	commitStyle, err := ui.ParseSectionStyle(cfg.CommitStyle)
	if err != nil {
		return nil, err
	}
	fileStyle, err := ui.ParseSectionStyle(cfg.FileStyle)
	if err != nil {
		return nil, err
	}
	hunkStyle, err := ui.ParseSectionStyle(cfg.HunkStyle)
	if err != nil {
		return nil, err
	}
	mode, err := ui.ParseColorMode(cfg.Color)
	if err != nil {
		return nil, err
	}
	theme, err := ui.ResolveTheme(cfg.Theme, cfg.Colors.ThemeConfig())
	if err != nil {
		return nil, err
	}
	registry, err := ui.NewSyntaxRegistry(cfg.SyntaxTheme, cfg.Syntax.Map)
	if err != nil {
		return nil, err
	}

	styles := ui.NewStyles(ui.NewRenderer(tty, mode), theme)
	painter := paint.New(out, styles, paint.Options{
		Width:            headerWidth(tty, cfg.Width),
		WordDiff:         cfg.WordDiff,
		HighlightRemoved: cfg.HighlightRemoved,
	})

	return stream.New(stream.Options{
		CommitStyle:  commitStyle,
		FileStyle:    fileStyle,
		HunkStyle:    hunkStyle,
		Width:        cfg.Width,
		Syntax:       registry,
		IgnoreSyntax: cfg.Syntax.Ignore,
		Logger:       logger,
	}, painter), nil
}

// headerWidth returns the width header rules span: the terminal width when
// w is a terminal, otherwise the configured padding width (0 if unset).
func headerWidth(w io.Writer, configured int) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return configured
}
