// Package engine runs generation batches against a host document.
//
// A batch is one of four operations: create everything, create the styles
// only, regenerate (remove prior output, then create everything) and create
// the flow map. Phases run in a fixed order (fonts, color styles, text
// styles, screens, dark variants) and report progress through a
// [progress.Emitter]. Percent never decreases within a batch and a
// successful batch ends with a progress event at 100.
//
// Failures follow two rules. A phase failure aborts the batch and is
// reported as one error event. A screen failure never escapes the composer
// registry: the screen is drawn by the fallback composer and the batch
// continues.
//
// An Engine runs one batch at a time. A second concurrent call fails with
// a BUSY error instead of waiting.
package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/screenforge/pkg/compose"
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/errors"
	"github.com/matzehuels/screenforge/pkg/flow"
	"github.com/matzehuels/screenforge/pkg/fonts"
	"github.com/matzehuels/screenforge/pkg/observability"
	"github.com/matzehuels/screenforge/pkg/progress"
)

// Host owns the output document and the installed fonts.
type Host interface {
	fonts.Loader

	// AvailableFonts lists the installed fonts.
	AvailableFonts(ctx context.Context) ([]fonts.FontRef, error)

	// Document returns the document batches write into.
	Document() *doc.Document

	// RemovePage deletes the named page from the document.
	RemovePage(ctx context.Context, name string) error
}

// Operation names a batch. The values double as host command names.
type Operation string

const (
	OpCreateAll    Operation = "create-all"
	OpCreateStyles Operation = "create-styles"
	OpRegenerate   Operation = "regenerate"
	OpCreateFlow   Operation = "create-flow"
)

// Operations lists the batch operations.
var Operations = []Operation{OpCreateAll, OpCreateStyles, OpRegenerate, OpCreateFlow}

// ScreenResult describes one placed screen.
type ScreenResult struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Design   string              `json:"design"`
	Dark     bool                `json:"dark,omitempty"`
	State    compose.State       `json:"state"`
	X        float64             `json:"x"`
	Y        float64             `json:"y"`
	Duration time.Duration       `json:"duration"`
	Err      *compose.BuildError `json:"-"`
	Node     *doc.Node           `json:"-"`
}

// Result summarizes a batch. A failed batch still returns the partial result.
type Result struct {
	BatchID      string             `json:"batch_id"`
	Operation    Operation          `json:"operation"`
	Screens      []ScreenResult     `json:"screens,omitempty"`
	ColorStyles  int                `json:"color_styles"`
	TextStyles   int                `json:"text_styles"`
	Fonts        fonts.Context      `json:"fonts"`
	FontErrors   []*fonts.LoadError `json:"-"`
	FlowNodes    int                `json:"flow_nodes,omitempty"`
	FlowEdges    int                `json:"flow_edges,omitempty"`
	FlowWarnings []flow.Edge        `json:"flow_warnings,omitempty"`
	Removed      []string           `json:"removed,omitempty"`
	Duration     time.Duration      `json:"duration"`

	// Canvas is the area the screens page covers and GridPages the number
	// of grid pages the light screens span.
	Canvas    Extent `json:"canvas,omitzero"`
	GridPages int    `json:"grid_pages,omitempty"`

	// ProgressClamped counts progress events that went backwards and were
	// raised to the previous percent.
	ProgressClamped int `json:"progress_clamped,omitempty"`
}

// Extent is a width and height in canvas units.
type Extent struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Unregistered counts screens whose design has no composer.
func (r *Result) Unregistered() int {
	n := 0
	for _, s := range r.Screens {
		if s.Err != nil && s.Err.Unregistered {
			n++
		}
	}
	return n
}

// Fallbacks counts screens drawn by the fallback composer.
func (r *Result) Fallbacks() int {
	n := 0
	for _, s := range r.Screens {
		if s.State == compose.FallbackComposed {
			n++
		}
	}
	return n
}

// Engine runs batches. Create with New.
type Engine struct {
	host  Host
	opts  Options
	log   *log.Logger
	fonts *fonts.Resolver

	mu sync.Mutex
}

// New validates opts and returns an engine writing into h.
func New(h Host, opts Options) (*Engine, error) {
	if h == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "host is required")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Engine{
		host:  h,
		opts:  opts,
		log:   opts.Logger,
		fonts: fonts.NewResolver(opts.PreferredFont, opts.FallbackFonts),
	}, nil
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// CreateEverything generates fonts, styles, all screens and the dark
// variants.
func (e *Engine) CreateEverything(ctx context.Context, em progress.Emitter) (*Result, error) {
	return e.run(ctx, OpCreateAll, em, e.createAll)
}

// CreateStylesOnly generates fonts and styles.
func (e *Engine) CreateStylesOnly(ctx context.Context, em progress.Emitter) (*Result, error) {
	return e.run(ctx, OpCreateStyles, em, e.createStyles)
}

// Regenerate removes every page whose name contains the page prefix and
// then creates everything. Nothing is created if cleanup fails.
func (e *Engine) Regenerate(ctx context.Context, em progress.Emitter) (*Result, error) {
	return e.run(ctx, OpRegenerate, em, e.regenerate)
}

// CreateFlowMap draws the navigation graph on its own page.
func (e *Engine) CreateFlowMap(ctx context.Context, em progress.Emitter) (*Result, error) {
	return e.run(ctx, OpCreateFlow, em, e.createFlow)
}

// batch is the state of one running operation.
type batch struct {
	id    string
	op    Operation
	emit  progress.Emitter
	mono  *progress.Monotonic
	phase progress.Phase
	log   *log.Logger
	res   *Result
}

func (b *batch) progress(ctx context.Context, phase progress.Phase, pct int, msg string) {
	b.phase = phase
	b.emit.Emit(progress.Progress(phase, pct, msg))
	observability.Engine().OnPhase(ctx, b.id, string(phase), pct)
}

func (e *Engine) run(ctx context.Context, op Operation, em progress.Emitter, fn func(context.Context, *batch) error) (*Result, error) {
	if em == nil {
		em = progress.Discard
	}
	if !e.mu.TryLock() {
		err := errors.New(errors.ErrCodeBusy, "another batch is running")
		em.Emit(progress.Failed(progress.PhaseStart, string(errors.ErrCodeBusy), err.Message))
		return nil, err
	}
	defer e.mu.Unlock()

	id := uuid.NewString()
	mono := progress.NewMonotonic(em)
	b := &batch{
		id:    id,
		op:    op,
		emit:  progress.WithBatch(mono, id),
		mono:  mono,
		phase: progress.PhaseStart,
		log:   e.log.With("batch", id[:8], "op", string(op)),
		res:   &Result{BatchID: id, Operation: op},
	}
	hooks := observability.Engine()
	hooks.OnBatchStart(ctx, id, string(op))
	b.log.Info("batch started")
	start := time.Now()

	err := fn(ctx, b)
	if err != nil {
		err = classify(err)
	}

	b.res.Duration = time.Since(start)
	if b.res.ProgressClamped = mono.Clamped(); b.res.ProgressClamped > 0 {
		b.log.Warn("progress schedule went backwards", "clamped", b.res.ProgressClamped)
	}
	hooks.OnBatchComplete(ctx, id, string(op), len(b.res.Screens), b.res.Duration, err)
	if err != nil {
		b.log.Error("batch failed", "phase", b.phase, "err", err)
		b.emit.Emit(progress.Failed(b.phase, string(errors.GetCode(err)), errors.UserMessage(err)))
		return b.res, err
	}
	b.log.Info("batch finished",
		"screens", len(b.res.Screens),
		"fallbacks", b.res.Fallbacks(),
		"duration", b.res.Duration)
	return b.res, nil
}

// classify makes sure every batch error carries a code.
func classify(err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		if !errors.Is(err, errors.ErrCodeCancelled) {
			return errors.Wrap(errors.ErrCodeCancelled, err, "batch cancelled")
		}
		return err
	}
	if errors.GetCode(err) == "" {
		return errors.Wrap(errors.ErrCodeInternal, err, "batch failed")
	}
	return err
}
