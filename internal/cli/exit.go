package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/screenforge/pkg/errors"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitBusy      = 75 // EX_TEMPFAIL: another batch holds the document
	ExitInterrupt = 130
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled), errors.Is(err, errors.ErrCodeCancelled):
		return ExitInterrupt
	case errors.Is(err, errors.ErrCodeBusy):
		return ExitBusy
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidOptions,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath,
		errors.ErrCodeUnknownCommand:
		return ExitUsage
	}
	return ExitFailure
}
