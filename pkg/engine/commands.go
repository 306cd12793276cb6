package engine

import (
	"context"

	"github.com/matzehuels/screenforge/pkg/errors"
	"github.com/matzehuels/screenforge/pkg/progress"
)

// CmdClose ends a session.
const CmdClose = "close"

// Command is a message from the host. Its JSON form is {"type":"create-all"}.
type Command struct {
	Type string `json:"type"`
}

// Handle runs the batch named by cmd. Close is a no-op here and returns a
// nil result; Serve is what ends on it. An unknown command emits an error
// event with code UNKNOWN_COMMAND.
func (e *Engine) Handle(ctx context.Context, cmd Command, em progress.Emitter) (*Result, error) {
	switch Operation(cmd.Type) {
	case OpCreateAll:
		return e.CreateEverything(ctx, em)
	case OpCreateStyles:
		return e.CreateStylesOnly(ctx, em)
	case OpRegenerate:
		return e.Regenerate(ctx, em)
	case OpCreateFlow:
		return e.CreateFlowMap(ctx, em)
	}
	if cmd.Type == CmdClose {
		return nil, nil
	}

	err := errors.New(errors.ErrCodeUnknownCommand, "unknown command %q", cmd.Type)
	e.log.Warn("unknown command", "type", cmd.Type)
	if em != nil {
		em.Emit(progress.Failed(progress.PhaseStart, string(errors.ErrCodeUnknownCommand), err.Message))
	}
	return nil, err
}

// Serve handles commands in arrival order until close, until cmds is
// closed, or until ctx is done. A failed batch is reported through em and
// does not end the session.
func (e *Engine) Serve(ctx context.Context, cmds <-chan Command, em progress.Emitter) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-cmds:
			if !ok || cmd.Type == CmdClose {
				e.log.Debug("session closed")
				return nil
			}
			e.log.Debug("command received", "type", cmd.Type)
			if _, err := e.Handle(ctx, cmd, em); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}
