package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	diff "github.com/shogoki/gotextdiff"
	"github.com/spf13/cobra"
)

var filesFlags RenderFlags

var filesCmd = &cobra.Command{
	Use:   "files <old> <new>",
	Short: "Diff two files and render the result",
	Long: `Compute a unified diff of two files and render it like git diff output.

Examples:
  term-diff files main.go main.go.orig
  term-diff files a.json b.json --hunk-style plain`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
	AddRenderFlags(filesCmd, &filesFlags)
}

func runFiles(cmd *cobra.Command, args []string) error {
	unified, err := fileDiff(args[0], args[1])
	if err != nil {
		return err
	}
	if unified == nil {
		return nil
	}
	return renderDiff(cmd, unified, &filesFlags)
}

// fileDiff returns git-style diff text for two files, or nil when they are
// identical. A "diff --git" line is prepended so the file header and syntax
// selection work as they do for git output.
func fileDiff(oldPath, newPath string) (io.Reader, error) {
	oldData, err := os.ReadFile(oldPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", oldPath, err)
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", newPath, err)
	}

	unified := diff.Diff(oldPath, oldData, newPath, newData)
	if !bytes.Contains(unified, []byte("@@")) {
		return nil, nil
	}

	header := fmt.Sprintf("diff --git a/%s b/%s\n", gitPath(oldPath), gitPath(newPath))
	return io.MultiReader(strings.NewReader(header), bytes.NewReader(unified)), nil
}

func gitPath(p string) string {
	return strings.TrimPrefix(filepath.ToSlash(filepath.Clean(p)), "/")
}
