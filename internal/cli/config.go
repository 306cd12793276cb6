package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/screenforge/pkg/catalog"
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/engine"
	"github.com/matzehuels/screenforge/pkg/fonts"
	"github.com/matzehuels/screenforge/pkg/grid"
	"github.com/matzehuels/screenforge/pkg/host"
	"github.com/matzehuels/screenforge/pkg/tokens"
)

// Config is the layout of the config file:
//
//	catalog = "screens.yaml"
//	tokens  = "tokens.toml"
//
//	[engine]
//	page_prefix = "DDA Mobile"
//	workers     = 4
//
//	[engine.grid]
//	columns = 4
//
//	[[fonts]]
//	family = "Inter"
//	style  = "Regular"
//
// Fonts lists the faces the headless host reports as installed. Leaving it
// out selects host.DefaultFonts.
type Config struct {
	Catalog string          `toml:"catalog"`
	Tokens  string          `toml:"tokens"`
	Engine  engine.Options  `toml:"engine"`
	Fonts   []fonts.FontRef `toml:"fonts"`
}

// loadConfig decodes the config file at path. An empty path reads
// defaultConfigFile if it exists and returns a zero Config otherwise.
func loadConfig(path string) (Config, []string, error) {
	// Keys missing from [engine.grid] keep the mobile defaults; an explicit
	// zero gap is kept as written.
	cfg := Config{Engine: engine.Options{Grid: grid.Default()}}
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil, nil
		}
		return Config{}, nil, fmt.Errorf("config %s: %w", path, err)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return cfg, unknown, nil
}

// settings is the resolved configuration of one command run.
type settings struct {
	opts  engine.Options
	fonts []fonts.FontRef
}

// settings merges the config file, the input documents and the flags into
// validated engine options. Flags win over the config file.
func (c *CLI) settings(cmd *cobra.Command) (*settings, error) {
	logger := loggerFromContext(cmd.Context())

	cfg, unknown, err := loadConfig(c.flags.config)
	if err != nil {
		return nil, err
	}
	for _, key := range unknown {
		logger.Warn("unknown config key", "key", key)
	}

	opts := cfg.Engine
	flags := cmd.Flags()
	if flags.Changed("prefix") {
		opts.PagePrefix = c.flags.prefix
	}
	if flags.Changed("workers") {
		opts.Workers = c.flags.workers
	}
	if flags.Changed("strict-flow") {
		opts.StrictFlow = c.flags.strictFlow
	}

	catalogPath := firstNonEmpty(c.flags.catalog, cfg.Catalog)
	if catalogPath != "" {
		cat, err := catalog.Load(catalogPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded catalog", "path", catalogPath, "screens", len(cat.Screens))
		opts.Catalog = cat
	}
	tokensPath := firstNonEmpty(c.flags.tokens, cfg.Tokens)
	if tokensPath != "" {
		tk, err := tokens.Load(tokensPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded tokens", "path", tokensPath)
		opts.Tokens = tk
	}

	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &settings{opts: opts, fonts: cfg.Fonts}, nil
}

// host returns a headless host writing into d, or into a new document when
// d is nil.
func (s *settings) host(d *doc.Document) *host.Memory {
	var hostOpts []host.Option
	if d != nil {
		hostOpts = append(hostOpts, host.WithDocument(d))
	}
	if len(s.fonts) > 0 {
		hostOpts = append(hostOpts, host.WithFonts(s.fonts...))
	}
	return host.NewMemory(hostOpts...)
}

// engine returns an engine over h.
func (s *settings) engine(h engine.Host) (*engine.Engine, error) {
	return engine.New(h, s.opts)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
