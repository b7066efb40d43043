package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `commit abc123
Author: someone
diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@ func main() {
 	a := 1
-	b := 2
+	b := 3
`

// newRenderCommand returns a command with its own render flags parsed from
// args, writing to the returned buffer. The config directory is empty.
func newRenderCommand(t *testing.T, args ...string) (*cobra.Command, *RenderFlags, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TERM_DIFF_DEBUG", "")

	var flags RenderFlags
	cmd := &cobra.Command{Use: "test"}
	AddRenderFlags(cmd, &flags)
	require.NoError(t, cmd.ParseFlags(args))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	return cmd, &flags, &out
}

func TestRenderDiffDecorated(t *testing.T) {
	cmd, flags, out := newRenderCommand(t, "--color", "never")

	require.NoError(t, renderDiff(cmd, strings.NewReader(sampleDiff), flags))

	want := "┌───────────────┐\n" +
		"│ commit abc123 │\n" +
		"└───────────────┘\n" +
		"Author: someone\n" +
		"main.go\n" +
		"───────\n" +
		"┌───────────────┐\n" +
		"│ func main() { │\n" +
		"└───────────────┘\n" +
		"\n" +
		"1\n" +
		" \ta := 1\n" +
		" \tb := 2\n" +
		" \tb := 3\n"
	assert.Equal(t, want, out.String())
}

func TestRenderDiffPlain(t *testing.T) {
	cmd, flags, out := newRenderCommand(t,
		"--color", "never",
		"--commit-style", "plain",
		"--file-style", "plain",
		"--hunk-style", "plain",
	)

	require.NoError(t, renderDiff(cmd, strings.NewReader(sampleDiff), flags))

	want := strings.NewReplacer("\n-\t", "\n \t", "\n+\t", "\n \t").Replace(sampleDiff)
	assert.Equal(t, want, out.String())
}

func TestRenderDiffWidthPadsBodyLines(t *testing.T) {
	cmd, flags, out := newRenderCommand(t, "--color", "never", "--hunk-style", "plain", "--file-style", "plain", "--commit-style", "plain", "-w", "20")

	input := "diff --git a/x.go b/x.go\n@@ -1 +1 @@\n-a\n+b\n"
	require.NoError(t, renderDiff(cmd, strings.NewReader(input), flags))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, " a"+strings.Repeat(" ", 18), lines[2])
	assert.Equal(t, " b"+strings.Repeat(" ", 18), lines[3])
}

func TestRenderDiffRejectsBadFlag(t *testing.T) {
	cmd, flags, _ := newRenderCommand(t, "--hunk-style", "zigzag")

	err := renderDiff(cmd, strings.NewReader(sampleDiff), flags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown section style "zigzag"`)
}

func TestRenderDiffReadsConfig(t *testing.T) {
	cmd, flags, out := newRenderCommand(t, "--color", "never")

	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "term-diff")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "commit_style: plain\nfile_style: plain\nhunk_style: plain\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	require.NoError(t, renderDiff(cmd, strings.NewReader("commit abc\n"), flags))
	assert.Equal(t, "commit abc\n", out.String())
}

func TestOverridesOnlyChangedFlags(t *testing.T) {
	cmd, flags, _ := newRenderCommand(t, "--theme", "nord")

	o := flags.Overrides(cmd)
	assert.Equal(t, "nord", o.Theme)
	assert.Nil(t, o.Width)
	assert.Nil(t, o.WordDiff)

	cmd, flags, _ = newRenderCommand(t, "--word-diff=false", "--width", "0")
	o = flags.Overrides(cmd)
	require.NotNil(t, o.WordDiff)
	assert.False(t, *o.WordDiff)
	require.NotNil(t, o.Width)
	assert.Equal(t, 0, *o.Width)
}

func TestFileDiff(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.py")
	newPath := filepath.Join(dir, "new.py")
	require.NoError(t, os.WriteFile(oldPath, []byte("x = 1\ny = 2\n"), 0644))
	require.NoError(t, os.WriteFile(newPath, []byte("x = 1\ny = 3\n"), 0644))

	r, err := fileDiff(oldPath, newPath)
	require.NoError(t, err)
	require.NotNil(t, r)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "diff --git a/"), text)
	assert.Contains(t, text, "@@")
	assert.Contains(t, text, "-y = 2")
	assert.Contains(t, text, "+y = 3")

	r, err = fileDiff(oldPath, oldPath)
	require.NoError(t, err)
	assert.Nil(t, r, "identical files produce no diff")

	_, err = fileDiff(oldPath, filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestNewLoggerLevels(t *testing.T) {
	t.Setenv("TERM_DIFF_DEBUG", "")
	var buf bytes.Buffer

	newLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	t.Setenv("TERM_DIFF_DEBUG", "1")
	newLogger(&buf, false).Debug("from env")
	assert.Contains(t, buf.String(), "from env")
}
