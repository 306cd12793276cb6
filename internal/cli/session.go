package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/engine"
	"github.com/matzehuels/screenforge/pkg/errors"
	sfio "github.com/matzehuels/screenforge/pkg/io"
	"github.com/matzehuels/screenforge/pkg/progress"
)

// maxCommandLine bounds one command line on stdin.
const maxCommandLine = 64 * 1024

// sessionCommand creates the "session" command: the host protocol over
// stdin and stdout.
func (c *CLI) sessionCommand() *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run batches for commands read from stdin (JSON lines)",
		Long: `Session speaks the host protocol. Each stdin line is a command:

  {"type":"create-all"}      {"type":"create-styles"}
  {"type":"regenerate"}      {"type":"create-flow"}
  {"type":"close"}

Each stdout line is an event:

  {"type":"progress","message":"📱 Ekranlar yaradılır...","progress":40}
  {"type":"error","message":"...","code":"MISSING_ROLE"}

Batches run one after the other against the same document. The session
ends on close or at end of input; logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSession(cmd, input, output)
		},
	}

	cmd.Flags().StringVarP(&input, "document", "d", "", "start from an existing document")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document here when the session ends")
	return cmd
}

func (c *CLI) runSession(cmd *cobra.Command, input, output string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	s, err := c.settings(cmd)
	if err != nil {
		return err
	}
	d := doc.New()
	if input != "" {
		if d, err = sfio.ImportJSON(input); err != nil {
			return err
		}
	}
	h := s.host(d)
	eng, err := s.engine(h)
	if err != nil {
		return err
	}

	logger.Info("session started", "document", input)
	sw := newStopwatch(logger)
	if err := serveSession(ctx, eng, cmd.InOrStdin(), cmd.OutOrStdout(), logger); err != nil {
		return err
	}
	sw.done(fmt.Sprintf("Session closed with %d pages", len(h.Document().Pages)))

	if output != "" {
		if err := sfio.ExportJSON(h.Document(), output); err != nil {
			return err
		}
		logger.Info("document written", "path", output)
	}
	return nil
}

// serveSession feeds commands decoded from r to eng and writes events to w
// until close, end of input or cancellation.
func serveSession(ctx context.Context, eng *engine.Engine, r io.Reader, w io.Writer, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := progress.NewWriter(w)
	cmds := make(chan engine.Command)
	go readCommands(ctx, r, cmds, events, logger)

	if err := eng.Serve(ctx, cmds, events); err != nil {
		return err
	}
	if err := events.Err(); err != nil {
		return fmt.Errorf("write events: %w", err)
	}
	return nil
}

// readCommands decodes one command per line and closes out at end of
// input. Malformed lines are answered with an error event and skipped.
func readCommands(ctx context.Context, r io.Reader, out chan<- engine.Command, em progress.Emitter, logger *log.Logger) {
	defer close(out)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxCommandLine)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var cmd engine.Command
		if err := json.Unmarshal(line, &cmd); err != nil || cmd.Type == "" {
			logger.Warn("malformed command", "line", string(line))
			em.Emit(progress.Failed(progress.PhaseStart, string(errors.ErrCodeInvalidInput), "malformed command: "+string(line)))
			continue
		}
		select {
		case out <- cmd:
		case <-ctx.Done():
			return
		}
	}
	if err := sc.Err(); err != nil {
		logger.Warn("reading commands failed", "err", err)
	}
}
