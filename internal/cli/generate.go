package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/screenforge/pkg/cache"
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/engine"
	"github.com/matzehuels/screenforge/pkg/errors"
	"github.com/matzehuels/screenforge/pkg/fonts"
	"github.com/matzehuels/screenforge/pkg/io"
	"github.com/matzehuels/screenforge/pkg/progress"
)

const (
	defaultScreensOutput = "screens.json"
	defaultStylesOutput  = "styles.json"

	// documentTTL bounds how long a generated document is reused.
	documentTTL = 24 * time.Hour
)

// createCommand creates the "create" command: styles, screens and dark
// variants into a new document.
func (c *CLI) createCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create styles, all screens and the dark variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCreate(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultScreensOutput, "output document (- for stdout)")
	return cmd
}

// stylesCommand creates the "styles" command.
func (c *CLI) stylesCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Create the color and text styles only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statusToStderrFor(output)
			s, err := c.settings(cmd)
			if err != nil {
				return err
			}
			h := s.host(nil)
			res, err := runBatch(cmd.Context(), s, h, engine.OpCreateStyles, "Creating styles...")
			if err != nil {
				return err
			}
			if err := writeDocument(h.Document(), output); err != nil {
				return err
			}
			printResult(res, h.Document().Stats(), false)
			printOutput(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultStylesOutput, "output document (- for stdout)")
	return cmd
}

// regenerateCommand creates the "regenerate" command, which removes the
// generated pages from an existing document and creates them again. Pages
// without the prefix in their name are kept.
func (c *CLI) regenerateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "regenerate [document]",
		Short: "Remove previous output from a document and create everything again",
		Long: `Regenerate loads a document written by create, removes every page whose
name contains the page prefix and runs create again. Other pages and
existing styles are kept; styles are updated in place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := defaultScreensOutput
			if len(args) == 1 {
				input = args[0]
			}
			if output == "" {
				output = input
			}
			return c.runRegenerate(cmd, input, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output document (default: overwrite the input)")
	return cmd
}

func (c *CLI) runCreate(cmd *cobra.Command, output string) error {
	statusToStderrFor(output)
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	s, err := c.settings(cmd)
	if err != nil {
		return err
	}
	store, err := c.newCache()
	if err != nil {
		return err
	}
	defer store.Close()

	key, err := documentKey(engine.OpCreateAll, s)
	if err != nil {
		return err
	}

	var res *engine.Result
	data, hit, err := cache.Fetch(ctx, store, "document", key, documentTTL, func(ctx context.Context) ([]byte, error) {
		h := s.host(nil)
		r, err := runBatch(ctx, s, h, engine.OpCreateAll, "Creating screens...")
		if err != nil {
			return nil, err
		}
		res = r
		var buf bytes.Buffer
		if err := io.WriteJSON(h.Document(), &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		return err
	}
	if hit {
		logger.Debug("document served from cache", "key", key[:16])
	}

	d, err := io.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if err := writeBytes(data, output); err != nil {
		return err
	}
	printResult(res, d.Stats(), hit)
	printOutput(output)
	return nil
}

func (c *CLI) runRegenerate(cmd *cobra.Command, input, output string) error {
	statusToStderrFor(output)
	logger := loggerFromContext(cmd.Context())

	s, err := c.settings(cmd)
	if err != nil {
		return err
	}

	d := doc.New()
	if fileExists(input) {
		if d, err = io.ImportJSON(input); err != nil {
			return err
		}
		logger.Info("loaded document", "path", input, "pages", len(d.Pages))
	} else {
		printWarning("%s not found, starting from an empty document", input)
	}

	h := s.host(d)
	res, err := runBatch(cmd.Context(), s, h, engine.OpRegenerate, "Regenerating...")
	if err != nil {
		return err
	}
	if err := writeDocument(h.Document(), output); err != nil {
		return err
	}
	if len(res.Removed) > 0 {
		printInfo("Removed %d pages", len(res.Removed))
		for _, name := range res.Removed {
			printDetail("%s", name)
		}
	}
	printResult(res, h.Document().Stats(), false)
	printOutput(output)
	return nil
}

// runBatch runs op on a new engine over h while a spinner shows progress.
func runBatch(ctx context.Context, s *settings, h engine.Host, op engine.Operation, message string) (*engine.Result, error) {
	eng, err := s.engine(h)
	if err != nil {
		return nil, err
	}

	sp := newSpinnerWithContext(ctx, message)
	sp.Start()
	em := progress.Multi(sp, logEmitter(loggerFromContext(ctx)))
	res, err := eng.Handle(ctx, engine.Command{Type: string(op)}, em)
	if err != nil {
		sp.StopWithError(errors.UserMessage(err))
		return nil, err
	}
	sp.Stop()
	return res, nil
}

// documentKey keys a generated document by everything that determines it.
func documentKey(op engine.Operation, s *settings) (string, error) {
	catalogJSON, err := json.Marshal(s.opts.Catalog)
	if err != nil {
		return "", fmt.Errorf("hash catalog: %w", err)
	}
	tokensJSON, err := json.Marshal(s.opts.Tokens)
	if err != nil {
		return "", fmt.Errorf("hash tokens: %w", err)
	}
	return cacheKeyer().DocumentKey(cache.DocumentKeyOpts{
		Operation:   string(op),
		CatalogHash: cache.Hash(catalogJSON),
		TokensHash:  cache.Hash(tokensJSON),
		Options: struct {
			Engine engine.Options  `json:"engine"`
			Fonts  []fonts.FontRef `json:"fonts,omitempty"`
			Design []string        `json:"designs"`
		}{s.opts, s.fonts, s.opts.Registry.Keys()},
	}), nil
}

// writeDocument writes d as a JSON document to path, or stdout for "-".
func writeDocument(d *doc.Document, path string) error {
	if path == "" || path == "-" {
		out, _ := openOutput("")
		return io.WriteJSON(d, out)
	}
	return io.ExportJSON(d, path)
}

// writeBytes writes data to path, or stdout for "-".
func writeBytes(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}
