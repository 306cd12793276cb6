package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/screenforge/pkg/buildinfo"
	"github.com/matzehuels/screenforge/pkg/engine"
	"github.com/matzehuels/screenforge/pkg/fonts"
	"github.com/matzehuels/screenforge/pkg/grid"
	sfio "github.com/matzehuels/screenforge/pkg/io"
)

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

// execute runs the CLI with args in a temporary working directory and
// cache.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "cache"))
	root := newTestCLI().RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

// parsed returns the named subcommand with args parsed, ready for settings.
func parsed(t *testing.T, c *CLI, name string, args ...string) *cobra.Command {
	t.Helper()
	root := c.RootCommand()
	cmd, _, err := root.Find([]string{name})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(args))
	cmd.SetContext(withLogger(context.Background(), c.Logger))
	return cmd
}

func TestRootCommand(t *testing.T) {
	root := newTestCLI().RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"create", "styles", "regenerate", "flow", "catalog", "session", "ui", "cache", "completion"} {
		require.Contains(t, names, want)
	}
	require.NotNil(t, root.PersistentFlags().Lookup("config"))
	require.NotNil(t, root.PersistentFlags().Lookup("no-cache"))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screenforge.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog = "screens.yaml"
colour  = "typo"

[engine]
page_prefix = "Demo App"
workers     = 4

[engine.grid]
columns = 2

[[fonts]]
family = "Roboto"
style  = "Regular"
`), 0o644))

	cfg, unknown, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "screens.yaml", cfg.Catalog)
	require.Equal(t, "Demo App", cfg.Engine.PagePrefix)
	require.Equal(t, 4, cfg.Engine.Workers)
	require.Equal(t, 2, cfg.Engine.Grid.Columns)
	require.Equal(t, float64(grid.DefaultColumnGap), cfg.Engine.Grid.ColumnGap)
	require.Equal(t, []fonts.FontRef{{Family: "Roboto", Style: "Regular"}}, cfg.Fonts)
	require.Equal(t, []string{"colour"}, unknown)

	_, _, err = loadConfig(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)

	t.Chdir(dir)
	require.NoError(t, os.Remove(path))
	cfg, unknown, err = loadConfig("")
	require.NoError(t, err)
	require.Zero(t, cfg.Engine.Workers)
	require.Empty(t, unknown)
}

func TestLoadConfigPartialGrid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screenforge.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[engine.grid]
rows_per_page = 3
row_gap       = 0
`), 0o644))

	cfg, _, err := loadConfig(path)
	require.NoError(t, err)
	g := cfg.Engine.Grid
	require.Equal(t, 3, g.RowsPerPage)
	require.Equal(t, grid.DefaultColumns, g.Columns)
	require.Equal(t, float64(grid.DefaultItemWidth), g.ItemWidth)
	require.Equal(t, float64(grid.DefaultColumnGap), g.ColumnGap)
	require.Zero(t, g.RowGap)
}

func TestSettingsFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[engine]
page_prefix = "From Config"
workers     = 2
`), 0o644))

	c := newTestCLI()
	cmd := parsed(t, c, "catalog", "--config", path, "--workers", "8")
	s, err := c.settings(cmd)
	require.NoError(t, err)
	require.Equal(t, "From Config", s.opts.PagePrefix)
	require.Equal(t, 8, s.opts.Workers)
	require.NotNil(t, s.opts.Catalog)
	require.NotNil(t, s.opts.Registry)
	require.Same(t, c.Logger, s.opts.Logger)
}

func TestSettingsRejectsBadInputs(t *testing.T) {
	c := newTestCLI()
	_, err := c.settings(parsed(t, c, "catalog", "--workers", "1000"))
	require.Error(t, err)

	c = newTestCLI()
	_, err = c.settings(parsed(t, c, "catalog", "--catalog", filepath.Join(t.TempDir(), "none.yaml")))
	require.Error(t, err)
}

func TestDocumentKey(t *testing.T) {
	c := newTestCLI()
	a, err := c.settings(parsed(t, c, "create"))
	require.NoError(t, err)

	c = newTestCLI()
	b, err := c.settings(parsed(t, c, "create", "--prefix", "Other"))
	require.NoError(t, err)

	ka, err := documentKey(engine.OpCreateAll, a)
	require.NoError(t, err)
	again, err := documentKey(engine.OpCreateAll, a)
	require.NoError(t, err)
	kb, err := documentKey(engine.OpCreateAll, b)
	require.NoError(t, err)
	styles, err := documentKey(engine.OpCreateStyles, a)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(ka, buildinfo.Version+":document:"))
	require.Equal(t, ka, again)
	require.NotEqual(t, ka, kb)
	require.NotEqual(t, ka, styles)
}

func TestCreateAndRegenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "screens.json")

	require.NoError(t, execute(t, "create", "-o", out))
	d, err := sfio.ImportJSON(out)
	require.NoError(t, err)
	stats := d.Stats()
	require.Equal(t, 1, stats.Pages)
	require.Equal(t, 34, stats.TopLevel)
	require.Equal(t, 30, stats.PaintStyles)

	require.NoError(t, execute(t, "regenerate", out))
	d, err = sfio.ImportJSON(out)
	require.NoError(t, err)
	require.Equal(t, stats, d.Stats())
}

func TestCreateUsesCache(t *testing.T) {
	cacheHome := filepath.Join(t.TempDir(), "cache")
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	out := filepath.Join(t.TempDir(), "screens.json")

	run := func(args ...string) {
		root := newTestCLI().RootCommand()
		root.SetArgs(args)
		require.NoError(t, root.ExecuteContext(context.Background()))
	}
	run("create", "-o", out)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(cacheHome, appName))
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	run("create", "-o", out)
	second, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestStylesCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "styles.json")
	require.NoError(t, execute(t, "styles", "-o", out))

	d, err := sfio.ImportJSON(out)
	require.NoError(t, err)
	require.Empty(t, d.Pages)
	require.Len(t, d.TextStyles, 6)
}

func TestFlowCommand(t *testing.T) {
	dir := t.TempDir()

	dot := filepath.Join(dir, "flow.dot")
	require.NoError(t, execute(t, "flow", "--format", "dot", "-o", dot))
	data, err := os.ReadFile(dot)
	require.NoError(t, err)
	require.Contains(t, string(data), "digraph flow")
	require.Contains(t, string(data), `"Login" -> "Onboarding 1"`)

	doc := filepath.Join(dir, "flow.json")
	require.NoError(t, execute(t, "flow", "-o", doc))
	d, err := sfio.ImportJSON(doc)
	require.NoError(t, err)
	require.Len(t, d.Pages, 1)
	require.Len(t, d.Pages[0].Nodes, 17+2*16)

	require.Error(t, execute(t, "flow", "--format", "png"))
	require.Error(t, execute(t, "flow", "--strict-flow", "--format", "dot", "-o", dot))
}

func TestCacheCommands(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	var buf strings.Builder
	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"cache", "path"})
	root.SetOut(&buf)
	require.NoError(t, root.ExecuteContext(context.Background()))
	require.Equal(t, filepath.Join(cacheHome, appName)+"\n", buf.String())

	root = newTestCLI().RootCommand()
	root.SetArgs([]string{"flow", "--format", "dot", "-o", filepath.Join(t.TempDir(), "f.dot")})
	require.NoError(t, root.ExecuteContext(context.Background()))

	root = newTestCLI().RootCommand()
	root.SetArgs([]string{"create", "-o", filepath.Join(t.TempDir(), "s.json")})
	require.NoError(t, root.ExecuteContext(context.Background()))

	root = newTestCLI().RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	entries, err := os.ReadDir(filepath.Join(cacheHome, appName))
	require.NoError(t, err)
	for _, e := range entries {
		sub, err := os.ReadDir(filepath.Join(cacheHome, appName, e.Name()))
		require.NoError(t, err)
		require.Empty(t, sub)
	}
}

func TestCompletionCommand(t *testing.T) {
	run := func(args ...string) string {
		t.Helper()
		root := newTestCLI().RootCommand()
		var out bytes.Buffer
		root.SetArgs(args)
		root.SetOut(&out)
		root.SetErr(io.Discard)
		require.NoError(t, root.ExecuteContext(context.Background()))
		return out.String()
	}

	require.Contains(t, run("completion", "bash"), "screenforge")

	formats := run(cobra.ShellCompRequestCmd, "flow", "--format", "")
	for _, want := range []string{"json", "dot", "svg"} {
		require.Contains(t, formats, want+"\n")
	}

	categories := run(cobra.ShellCompRequestCmd, "catalog", "--category", "")
	for _, name := range categoryNames() {
		require.Contains(t, categories, name+"\n")
	}
	require.Contains(t, categories, "Purchase\n")

	require.Error(t, execute(t, "completion", "tcsh"))
}
