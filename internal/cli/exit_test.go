package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/screenforge/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"interrupted", fmt.Errorf("create: %w", context.Canceled), ExitInterrupt},
		{"cancelled batch", errors.New(errors.ErrCodeCancelled, "batch cancelled"), ExitInterrupt},
		{"busy", errors.New(errors.ErrCodeBusy, "another batch is running"), ExitBusy},
		{"bad format", validateFlowFormat("png"), ExitUsage},
		{"bad catalog", errors.New(errors.ErrCodeInvalidCatalog, "duplicate id"), ExitFailure},
		{"plain", stderrors.New("disk full"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitCodeFromCommand(t *testing.T) {
	err := execute(t, "flow", "--format", "png", "-o", "-")
	require.Error(t, err)
	require.Equal(t, ExitUsage, ExitCode(err))
}
