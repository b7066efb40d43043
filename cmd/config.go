package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/samsaffron/term-diff/internal/config"
	"github.com/samsaffron/term-diff/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage term-diff configuration",
	Long: `View or edit your term-diff configuration.

Examples:
  term-diff config                     # show current config
  term-diff config edit                # edit in $EDITOR
  term-diff config reset               # reset to defaults
  term-diff config completion zsh      # generate shell completions`,
	RunE: configShow, // Default to show
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file in $EDITOR",
	RunE:  configEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	RunE:  configPath,
}

var configCompletionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script and print setup instructions.

Examples:
  term-diff config completion bash
  term-diff config completion zsh --install
  term-diff config completion fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      configCompletion,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to defaults",
	Long:  `Reset the configuration file to default values. This will overwrite any existing configuration.`,
	RunE:  configReset,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value while preserving comments.

Examples:
  term-diff config set theme nord
  term-diff config set hunk_style underline
  term-diff config set colors.minus_bg "#3c1f1e"
  term-diff config set syntax.map.tpl html`,
	Args:              cobra.ExactArgs(2),
	RunE:              configSet,
	ValidArgsFunction: configSetCompletion,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value from the config file.

Examples:
  term-diff config get theme
  term-diff config get colors.plus_bg`,
	Args:              cobra.ExactArgs(1),
	RunE:              configGet,
	ValidArgsFunction: configGetCompletion,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configCompletionCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}

func configShow(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !config.Exists() {
		fmt.Fprintf(out, "# No config file (using defaults)\n")
		fmt.Fprintf(out, "# Create one at: %s\n\n", configPath)
	} else {
		fmt.Fprintf(out, "# %s\n\n", configPath)
	}
	return writeYAML(out, cfg)
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return encoder.Close()
}

func configEdit(cmd *cobra.Command, args []string) error {
	configPath, err := ensureConfigFile()
	if err != nil {
		return err
	}

	// Get editor from environment
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	return editorCmd.Run()
}

// ensureConfigFile creates the config file with default content when missing
// and returns its path.
func ensureConfigFile() (string, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if !config.Exists() {
		if err := os.WriteFile(configPath, []byte(config.DefaultContent()), 0644); err != nil {
			return "", fmt.Errorf("failed to create config file: %w", err)
		}
	}
	return configPath, nil
}

func configPath(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func configReset(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(config.DefaultContent()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config reset to defaults: %s\n", configPath)
	return nil
}

var installCompletions bool

func init() {
	configCompletionCmd.Flags().BoolVar(&installCompletions, "install", false, "Install completions to standard location")
}

func configCompletion(cmd *cobra.Command, args []string) error {
	shell := args[0]
	if !installCompletions {
		return generateCompletion(cmd.OutOrStdout(), shell)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	_, err = installShellCompletion(cmd.ErrOrStderr(), home, shell)
	return err
}

func generateCompletion(w io.Writer, shell string) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletion(w)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unknown shell: %s", shell)
	}
}

// completionTarget is where a shell looks for completion scripts, relative to
// the home directory, and how to enable it. %s in hint is the installed path.
type completionTarget struct {
	path string
	hint string
}

var completionTargets = map[string]completionTarget{
	"bash":       {".bash_completion.d/term-diff", "Source %s from ~/.bashrc to enable them."},
	"zsh":        {".local/share/zsh/site-functions/_term-diff", "Add the directory of %s to fpath before compinit."},
	"fish":       {".config/fish/completions/term-diff.fish", ""},
	"powershell": {".config/powershell/completions/term-diff.ps1", "Dot-source %s from your profile."},
}

// installShellCompletion writes the completion script for shell below home
// and returns its path. A one-line setup hint goes to w.
func installShellCompletion(w io.Writer, home, shell string) (string, error) {
	target, ok := completionTargets[shell]
	if !ok {
		return "", fmt.Errorf("unknown shell: %s", shell)
	}

	var script bytes.Buffer
	if err := generateCompletion(&script, shell); err != nil {
		return "", err
	}

	path := filepath.Join(home, filepath.FromSlash(target.path))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, script.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write completion file: %w", err)
	}

	fmt.Fprintf(w, "Installed completions to %s\n", path)
	if target.hint != "" {
		fmt.Fprintf(w, target.hint+"\n", path)
	}
	return path, nil
}

// validateSetting rejects keys term-diff does not read and values that would
// fail validation at render time.
func validateSetting(key, value string) error {
	switch {
	case strings.HasPrefix(key, "syntax.map."):
		if !ui.KnownLanguage(value) {
			if s := ui.Suggest(value, ui.LanguageNames()); s != "" {
				return fmt.Errorf("unknown language %q (did you mean %q?)", value, s)
			}
			return fmt.Errorf("unknown language %q", value)
		}
		return nil
	case !slices.Contains(config.Keys, key):
		if s := ui.Suggest(key, config.Keys); s != "" {
			return fmt.Errorf("unknown key %q (did you mean %q?)", key, s)
		}
		return fmt.Errorf("unknown key %q", key)
	}

	var err error
	switch key {
	case "commit_style", "file_style", "hunk_style":
		_, err = ui.ParseSectionStyle(value)
	case "color":
		_, err = ui.ParseColorMode(value)
	case "theme":
		_, err = ui.ResolveTheme(value, ui.ThemeConfig{})
	case "syntax_theme":
		_, err = ui.ResolveSyntaxTheme(value)
	case "width":
		if n, convErr := strconv.Atoi(value); convErr != nil || n < 0 {
			err = fmt.Errorf("width must be a non-negative integer, got %q", value)
		}
	case "highlight_removed", "word_diff":
		if _, convErr := strconv.ParseBool(value); convErr != nil {
			err = fmt.Errorf("%s must be true or false, got %q", key, value)
		}
	}
	return err
}

// configSet sets a configuration value while preserving comments
func configSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	if err := validateSetting(key, value); err != nil {
		return err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config: %w", err)
	}
	updated, err := setConfigValue(data, key, value)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, updated, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}

// setConfigValue returns data with key set to value. Empty data starts a new
// document.
func setConfigValue(data []byte, key, value string) ([]byte, error) {
	var root yaml.Node
	if len(bytes.TrimSpace(data)) == 0 {
		// Create new document with empty mapping
		root = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{{
				Kind: yaml.MappingNode,
			}},
		}
	} else if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := setYAMLValue(&root, strings.Split(key, "."), value); err != nil {
		return nil, fmt.Errorf("failed to set value: %w", err)
	}

	var buf bytes.Buffer
	if err := writeYAML(&buf, &root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// documentMapping returns the top-level mapping of a parsed document.
func documentMapping(root *yaml.Node) (*yaml.Node, error) {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("invalid document structure")
	}
	return root.Content[0], nil
}

// mappingValue returns the value node stored under key in mapping m, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// setYAMLValue stores value as a plain scalar at path, creating intermediate
// mappings. Flow mappings such as "map: {}" on the way are turned into block
// mappings so the result reads like the rest of the file.
func setYAMLValue(root *yaml.Node, path []string, value string) error {
	m, err := documentMapping(root)
	if err != nil {
		return err
	}
	if m.Kind != yaml.MappingNode {
		return fmt.Errorf("root is not a mapping")
	}

	parents, leaf := path[:len(path)-1], path[len(path)-1]
	for _, key := range parents {
		child := mappingValue(m, key)
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, child)
		} else if child.Kind != yaml.MappingNode {
			*child = yaml.Node{Kind: yaml.MappingNode, HeadComment: child.HeadComment, LineComment: child.LineComment}
		}
		child.Style &^= yaml.FlowStyle
		m = child
	}

	scalar := yaml.Node{Kind: yaml.ScalarNode, Value: value}
	if node := mappingValue(m, leaf); node != nil {
		scalar.HeadComment, scalar.LineComment, scalar.FootComment = node.HeadComment, node.LineComment, node.FootComment
		*node = scalar
		return nil
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: leaf}, &scalar)
	return nil
}

// configGet gets a configuration value
func configGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config file does not exist")
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	value, err := getYAMLValue(&root, strings.Split(key, "."))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

// getYAMLValue returns the scalar stored at path.
func getYAMLValue(root *yaml.Node, path []string) (string, error) {
	node, err := documentMapping(root)
	if err != nil {
		return "", err
	}
	for _, key := range path {
		if node.Kind != yaml.MappingNode {
			return "", fmt.Errorf("path not found: expected mapping")
		}
		if node = mappingValue(node, key); node == nil {
			return "", fmt.Errorf("key not found: %s", key)
		}
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("value is not a scalar")
	}
	return node.Value, nil
}

// configSetCompletion provides completions for config set
func configSetCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return filterPrefix(config.Keys, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return configValueCompletions(args[0], toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// configGetCompletion provides completions for config get
func configGetCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return filterPrefix(config.Keys, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// configValueCompletions returns completions for config values based on key
func configValueCompletions(key, toComplete string) []string {
	switch key {
	case "commit_style", "file_style", "hunk_style":
		return filterPrefix(ui.SectionStyleNames, toComplete)
	case "color":
		return filterPrefix([]string{"auto", "always", "never"}, toComplete)
	case "theme":
		return filterPrefix(ui.PresetThemeNames, toComplete)
	case "syntax_theme":
		return filterPrefix(ui.SyntaxThemeNames(), toComplete)
	case "highlight_removed", "word_diff":
		return filterPrefix([]string{"true", "false"}, toComplete)
	}
	if strings.HasPrefix(key, "syntax.map.") {
		return filterPrefix(ui.LanguageNames(), toComplete)
	}
	return nil
}

// filterPrefix filters a slice to items starting with prefix
func filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		if strings.HasPrefix(item, prefix) {
			result = append(result, item)
		}
	}
	return result
}
