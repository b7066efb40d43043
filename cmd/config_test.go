package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/samsaffron/term-diff/internal/config"
)

func getValue(t *testing.T, data []byte, key string) (string, error) {
	t.Helper()
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &root))
	return getYAMLValue(&root, strings.Split(key, "."))
}

func TestSetConfigValueNewDocument(t *testing.T) {
	data, err := setConfigValue(nil, "colors.minus_bg", "52")
	require.NoError(t, err)

	got, err := getValue(t, data, "colors.minus_bg")
	require.NoError(t, err)
	assert.Equal(t, "52", got)
}

func TestSetConfigValuePreservesComments(t *testing.T) {
	data, err := setConfigValue([]byte(config.DefaultContent()), "theme", "nord")
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "# term-diff configuration")
	assert.Contains(t, text, "theme: nord")

	got, err := getValue(t, data, "hunk_style")
	require.NoError(t, err)
	assert.Equal(t, "box", got, "other keys are untouched")
}

func TestSetConfigValueIntoFlowMapping(t *testing.T) {
	// the default file has "map: {}"
	data, err := setConfigValue([]byte(config.DefaultContent()), "syntax.map.tpl", "html")
	require.NoError(t, err)

	got, err := getValue(t, data, "syntax.map.tpl")
	require.NoError(t, err)
	assert.Equal(t, "html", got)
}

func TestSetConfigValueBadYAML(t *testing.T) {
	_, err := setConfigValue([]byte("theme: [\n"), "theme", "nord")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestGetYAMLValueErrors(t *testing.T) {
	data := []byte("theme: nord\nsyntax:\n  ignore:\n    - vendor/**\n")

	_, err := getValue(t, data, "missing")
	assert.EqualError(t, err, "key not found: missing")

	_, err = getValue(t, data, "theme.nested")
	assert.EqualError(t, err, "path not found: expected mapping")

	_, err = getValue(t, data, "syntax.ignore")
	assert.EqualError(t, err, "value is not a scalar")
}

func TestValidateSetting(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    string
	}{
		{"theme", "nord", ""},
		{"theme", "nrod", "unknown theme"},
		{"hunk_style", "underline", ""},
		{"hunk_style", "wavy", "unknown section style"},
		{"color", "never", ""},
		{"color", "rainbow", "unknown color mode"},
		{"width", "100", ""},
		{"width", "-3", "non-negative integer"},
		{"word_diff", "false", ""},
		{"word_diff", "nah", "must be true or false"},
		{"syntax_theme", "monokai", ""},
		{"colors.plus_bg", "22", ""},
		{"syntax.map.tpl", "html", ""},
		{"syntax.map.tpl", "not-a-language-at-all", "unknown language"},
		{"them", "nord", `unknown key "them" (did you mean "theme"?)`},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := validateSetting(tt.key, tt.value)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValueCompletions(t *testing.T) {
	assert.Equal(t, []string{"box"}, configValueCompletions("hunk_style", "b"))
	assert.Equal(t, []string{"never"}, configValueCompletions("color", "n"))
	assert.Contains(t, configValueCompletions("theme", ""), "gruvbox")
	assert.Nil(t, configValueCompletions("colors.minus_bg", ""))
}

func TestInstallShellCompletion(t *testing.T) {
	home := t.TempDir()
	var msg bytes.Buffer

	path, err := installShellCompletion(&msg, home, "zsh")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "zsh", "site-functions", "_term-diff"), path)

	script, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(script), "term-diff")
	assert.Contains(t, msg.String(), "Installed completions to "+path)
	assert.Contains(t, msg.String(), "fpath")

	_, err = installShellCompletion(&msg, home, "tcsh")
	assert.EqualError(t, err, "unknown shell: tcsh")
}

func TestSetConfigValueReplacesNestedScalar(t *testing.T) {
	data, err := setConfigValue([]byte("theme: nord # mine\n"), "theme.nested", "x")
	require.NoError(t, err)

	got, err := getValue(t, data, "theme.nested")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}
