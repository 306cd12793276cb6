package cli

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/screenforge/pkg/progress"
)

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()

	cancel()

	// Give goroutine time to notice cancellation
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Testing idempotent stop...")
	s.Start()

	// Stop multiple times should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner("Testing error...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed!")
}

func TestSpinnerEmit(t *testing.T) {
	s := newSpinner("Starting...")
	s.Start()
	defer s.Stop()

	s.Emit(progress.Progress(progress.PhaseScreens, 42, "📱 01. Login yaradıldı..."))
	if got, want := s.Message(), " 42% 📱 01. Login yaradıldı..."; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}

	s.Emit(progress.Failed(progress.PhaseScreens, "CANCELLED", "batch cancelled"))
	if got := s.Message(); got != " 42% 📱 01. Login yaradıldı..." {
		t.Errorf("error event changed message to %q", got)
	}
}
