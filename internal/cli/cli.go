// Package cli implements the screenforge command-line interface.
//
// The CLI is a host for the generation engine: it owns an in-memory
// document, runs batches against it and writes the result as JSON. The
// session command speaks the host protocol over stdin and stdout, and the
// ui command offers the same actions as an interactive menu.
//
// # Commands
//
//   - create: generate styles, every screen and the dark variants
//   - styles: generate the color and text styles only
//   - regenerate: remove previous output from a document and create again
//   - flow: export the flow map as a document, DOT or SVG
//   - catalog: list the screen catalog
//   - session: JSON-lines host protocol
//   - ui: interactive menu
//   - cache: manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and --quiet
// (-q) to report errors only. Loggers are
// passed through context.Context and handed to the engine.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/screenforge/pkg/buildinfo"
	"github.com/matzehuels/screenforge/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "screenforge"

	// defaultConfigFile is read from the working directory when --config is
	// not given.
	defaultConfigFile = appName + ".toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	flags globalFlags
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	config     string // TOML config file
	catalog    string // screen catalog YAML
	tokens     string // design token TOML
	prefix     string // page prefix override
	workers    int    // composition workers override
	strictFlow bool   // fail on dangling flow edges
	noCache    bool   // bypass the artifact cache
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Screenforge generates mobile screen designs from a catalog",
		Long:         `Screenforge is a CLI tool that builds a design document for a mobile app: color and text styles from design tokens, every screen of a catalog laid out on a grid, dark variants and a flow map of the navigation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVarP(&c.flags.config, "config", "c", "", "config file (default ./"+defaultConfigFile+" if present)")
	pf.StringVar(&c.flags.catalog, "catalog", "", "screen catalog YAML (default: embedded catalog)")
	pf.StringVar(&c.flags.tokens, "tokens", "", "design token TOML (default: embedded tokens)")
	pf.StringVar(&c.flags.prefix, "prefix", "", "page name prefix")
	pf.IntVar(&c.flags.workers, "workers", 0, "screens composed concurrently")
	pf.BoolVar(&c.flags.strictFlow, "strict-flow", false, "fail the flow map on edges to unknown screens")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "disable the artifact cache")

	// Register all subcommands
	root.AddCommand(c.createCommand())
	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.regenerateCommand())
	root.AddCommand(c.flowCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.sessionCommand())
	root.AddCommand(c.uiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// cacheKeyer scopes every artifact key by build version.
func cacheKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
}

func (c *CLI) newCache() (cache.Cache, error) {
	if c.flags.noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/screenforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// nopCloser wraps a writer that must not be closed, such as stdout.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, or stdout when path is empty or "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
