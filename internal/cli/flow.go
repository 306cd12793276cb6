package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/screenforge/pkg/cache"
	"github.com/matzehuels/screenforge/pkg/engine"
	"github.com/matzehuels/screenforge/pkg/errors"
	"github.com/matzehuels/screenforge/pkg/flow"
)

const (
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"

	// svgTTL bounds how long a Graphviz rendering is reused.
	svgTTL = 7 * 24 * time.Hour
)

// flowOpts holds the command-line flags for the flow command.
type flowOpts struct {
	output       string // output path, "-" for stdout
	format       string // json, dot or svg
	showDangling bool   // draw dangling targets as placeholders (dot, svg)
}

// flowCommand creates the "flow" command for exporting the navigation map.
func (c *CLI) flowCommand() *cobra.Command {
	opts := flowOpts{format: formatJSON}

	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Build the flow map of the screen navigation",
		Long: `Flow builds the navigation graph of the catalog. The json format runs
the flow map batch and writes a document with the flow page; dot and svg
export the graph through Graphviz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlowFormat(opts.format); err != nil {
				return err
			}
			if opts.output == "" {
				opts.output = "flow." + opts.format
			}
			return c.runFlow(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default flow.<format>, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json (default), dot, svg")
	cmd.Flags().BoolVar(&opts.showDangling, "show-dangling", false, "draw edges to unknown screens as dashed placeholders (dot, svg)")
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(formatJSON, formatDOT, formatSVG))
	return cmd
}

// validateFlowFormat checks that format is json, dot or svg.
func validateFlowFormat(format string) error {
	switch format {
	case formatJSON, formatDOT, formatSVG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'json', 'dot' or 'svg')", format)
}

func (c *CLI) runFlow(cmd *cobra.Command, opts *flowOpts) error {
	statusToStderrFor(opts.output)
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	s, err := c.settings(cmd)
	if err != nil {
		return err
	}

	if opts.format == formatJSON {
		h := s.host(nil)
		res, err := runBatch(ctx, s, h, engine.OpCreateFlow, "Creating flow map...")
		if err != nil {
			return err
		}
		if err := writeDocument(h.Document(), opts.output); err != nil {
			return err
		}
		printResult(res, h.Document().Stats(), false)
		printDetail("%d screens · %d edges", res.FlowNodes, res.FlowEdges)
		printOutput(opts.output)
		return nil
	}

	g := flow.Build(s.opts.Catalog.Flows)
	logger.Infof("Built flow graph: %d screens, %d edges", len(g.Nodes), len(g.Edges))
	for _, e := range g.Dangling {
		printWarning("flow target not found: %s", e)
	}
	if s.opts.StrictFlow {
		if err := g.Err(); err != nil {
			return err
		}
	}

	dot := flow.ToDOT(g, flow.DOTOptions{ShowDangling: opts.showDangling})
	data, cached := []byte(dot), false
	if opts.format == formatSVG {
		data, cached, err = renderFlowSVG(ctx, c, dot)
		if err != nil {
			return err
		}
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	if err := writeBytes(data, opts.output); err != nil {
		return err
	}
	printSuccess("Flow map exported")
	fmt.Fprintln(statusOut, statsLine([]string{
		fmt.Sprintf("%d screens", len(g.Nodes)),
		fmt.Sprintf("%d edges", len(g.Edges)),
	}, cached))
	printOutput(opts.output)
	return nil
}

// renderFlowSVG renders dot through Graphviz, reusing a cached rendering of
// the same source.
func renderFlowSVG(ctx context.Context, c *CLI, dot string) ([]byte, bool, error) {
	store, err := c.newCache()
	if err != nil {
		return nil, false, err
	}
	defer store.Close()

	key := cacheKeyer().SVGKey(dot)
	return cache.Fetch(ctx, store, "svg", key, svgTTL, func(ctx context.Context) ([]byte, error) {
		loggerFromContext(ctx).Info("Rendering flow SVG")
		return flow.RenderSVG(ctx, dot)
	})
}
