package engine

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/screenforge/pkg/catalog"
	"github.com/matzehuels/screenforge/pkg/compose"
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/errors"
	"github.com/matzehuels/screenforge/pkg/flow"
	"github.com/matzehuels/screenforge/pkg/fonts"
	"github.com/matzehuels/screenforge/pkg/grid"
	"github.com/matzehuels/screenforge/pkg/host"
	"github.com/matzehuels/screenforge/pkg/observability"
	"github.com/matzehuels/screenforge/pkg/progress"
	"github.com/matzehuels/screenforge/pkg/theme"
	"github.com/matzehuels/screenforge/pkg/tokens"
)

var (
	defaults    = &Options{PagePrefix: DefaultPagePrefix}
	screensPage = defaults.ScreensPage()
	flowPage    = defaults.FlowPage()
)

func newEngine(t *testing.T, h Host, opts Options) *Engine {
	t.Helper()
	e, err := New(h, opts)
	require.NoError(t, err)
	return e
}

// requireNonDecreasing checks the recorded percents and that the engine
// did not have to clamp any of them on the way out.
func requireNonDecreasing(t *testing.T, res *Result, pcts []int) {
	t.Helper()
	require.NotEmpty(t, pcts)
	require.Zero(t, res.ProgressClamped, "engine emitted a decreasing percent")
	for i := 1; i < len(pcts); i++ {
		require.GreaterOrEqual(t, pcts[i], pcts[i-1], "percents %v", pcts)
	}
}

var createAllSchedule = []int{
	5, 15, 25, 40,
	40, 41, 42, 44, 45, 46, 48, 49, 50, 52, 53, 54, 56, 57, 58, 60,
	61, 62, 64, 65, 66, 68, 69, 70, 72, 73, 74, 76, 77, 78,
	85, 85, 87, 90, 92,
	100,
}

func pageNames(d *doc.Document) []string {
	var names []string
	for _, p := range d.Pages {
		names = append(names, p.Name)
	}
	return names
}

func TestCreateEverything(t *testing.T) {
	h := host.NewMemory()
	e := newEngine(t, h, Options{})
	rec := &progress.Recorder{}

	res, err := e.CreateEverything(context.Background(), rec)
	require.NoError(t, err)
	require.NotEmpty(t, res.BatchID)
	require.Equal(t, OpCreateAll, res.Operation)

	pcts := rec.Percents()
	requireNonDecreasing(t, res, pcts)
	require.Equal(t, createAllSchedule, pcts)
	require.Empty(t, rec.Errors())
	last, _ := rec.Last()
	require.True(t, last.Done())
	for _, ev := range rec.Events() {
		require.Equal(t, res.BatchID, ev.Batch)
	}

	d := h.Document()
	stats := d.Stats()
	require.Equal(t, 30, stats.PaintStyles)
	require.Equal(t, 6, stats.TextStyles)
	require.Equal(t, 1, stats.Pages)
	require.Equal(t, 34, stats.TopLevel)
	require.Len(t, res.Screens, 34)
	require.Equal(t, 30, res.ColorStyles)
	require.Equal(t, 6, res.TextStyles)
	require.Equal(t, 7, res.Fallbacks())
	require.Equal(t, 7, res.Unregistered())

	page := d.Page(screensPage)
	require.NotNil(t, page)
	for _, n := range page.Nodes {
		require.NoError(t, doc.Validate(n))
	}

	require.Equal(t, "Inter", res.Fonts.Regular.Family)
	require.Equal(t, fonts.Bold, res.Fonts.Bold.Style)
	require.Empty(t, res.FontErrors)
}

func TestCreateEverythingPlacement(t *testing.T) {
	h := host.NewMemory()
	res, err := newEngine(t, h, Options{}).CreateEverything(context.Background(), nil)
	require.NoError(t, err)

	pos := func(i int) [2]float64 { return [2]float64{res.Screens[i].X, res.Screens[i].Y} }
	require.Equal(t, [2]float64{0, 0}, pos(0))
	require.Equal(t, [2]float64{1365, 0}, pos(3))
	require.Equal(t, [2]float64{0, 900}, pos(4))
	require.Equal(t, [2]float64{455, 6300}, pos(29))
	require.Equal(t, [2]float64{0, 8100}, pos(30))
	require.Equal(t, [2]float64{1365, 8100}, pos(33))

	page := h.Document().Page(screensPage)
	require.Equal(t, "01. Login", page.Nodes[0].Name)
	require.Equal(t, 455.0, page.Nodes[1].Geometry.X)

	dark := page.Find("31. Home — Dark")
	require.NotNil(t, dark)
	require.True(t, res.Screens[30].Dark)
	require.Equal(t, theme.MustHex("#111827"), dark.Fills[0].Color)
}

func TestCanvasAndGridPages(t *testing.T) {
	paged := grid.Default()
	paged.RowsPerPage = 3
	tests := []struct {
		name  string
		grid  grid.Config
		pages int
	}{
		{"single page", grid.Default(), 1},
		{"three rows per page", paged, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newEngine(t, host.NewMemory(), Options{Grid: tt.grid}).CreateEverything(context.Background(), nil)
			require.NoError(t, err)
			require.Equal(t, tt.pages, res.GridPages)
			require.Equal(t, Extent{W: 1740, H: 8912}, res.Canvas)
		})
	}
}

func TestScreenIsolation(t *testing.T) {
	reg := compose.Default()
	reg.MustRegister("boom", func(frame *doc.Node, env compose.Env) error {
		panic("composer exploded")
	})
	reg.MustRegister("fails", func(frame *doc.Node, env compose.Env) error {
		return stderrors.New("no data")
	})
	cat := &catalog.Catalog{Screens: []catalog.Descriptor{
		{ID: "a", Name: "01. Broken", Category: catalog.Main, Design: "boom"},
		{ID: "b", Name: "02. Failing", Category: catalog.Main, Design: "fails"},
		{ID: "c", Name: "03. Login", Category: catalog.Auth, Design: "login"},
	}}

	h := host.NewMemory()
	rec := &progress.Recorder{}
	res, err := newEngine(t, h, Options{Catalog: cat, Registry: reg}).CreateEverything(context.Background(), rec)
	require.NoError(t, err)
	require.Empty(t, rec.Errors())
	last, _ := rec.Last()
	require.Equal(t, 100, last.Percent)

	require.Len(t, res.Screens, 3)
	require.Equal(t, compose.FallbackComposed, res.Screens[0].State)
	require.True(t, res.Screens[0].Err.Panicked)
	require.Equal(t, compose.FallbackComposed, res.Screens[1].State)
	require.Equal(t, compose.Composed, res.Screens[2].State)
	require.Equal(t, 2, res.Fallbacks())
	require.Zero(t, res.Unregistered())
	require.Equal(t, Extent{W: 1285, H: 812}, res.Canvas)

	broken := h.Document().Page(screensPage).Find("01. Broken")
	require.Equal(t, []string{"01. Broken", "📱 Main"}, broken.Texts())
}

func TestRegenerateIdempotent(t *testing.T) {
	h := host.NewMemory()
	h.Document().AddPage("Notes")
	e := newEngine(t, h, Options{})
	ctx := context.Background()

	_, err := e.CreateEverything(ctx, nil)
	require.NoError(t, err)
	_, err = e.CreateFlowMap(ctx, nil)
	require.NoError(t, err)

	for range 2 {
		rec := &progress.Recorder{}
		res, err := e.Regenerate(ctx, rec)
		require.NoError(t, err)
		require.Contains(t, res.Removed, screensPage)

		pcts := rec.Percents()
		requireNonDecreasing(t, res, pcts)
		want := []int{10, 20}
		for _, p := range createAllSchedule {
			want = append(want, 20+p*80/100)
		}
		require.Equal(t, want, pcts)
	}

	names := pageNames(h.Document())
	require.Equal(t, []string{"Notes", screensPage}, names)
	require.Len(t, h.Document().Page(screensPage).Nodes, 34)
	require.Equal(t, 30, h.Document().Stats().PaintStyles)
}

func TestBackwardsProgressIsCounted(t *testing.T) {
	e := newEngine(t, host.NewMemory(), Options{})
	rec := &progress.Recorder{}

	res, err := e.run(context.Background(), OpCreateAll, rec, func(ctx context.Context, b *batch) error {
		for _, p := range []int{5, 85, 40, 100} {
			b.progress(ctx, progress.PhaseScreens, p, "step")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{5, 85, 85, 100}, rec.Percents())
	require.Equal(t, 1, res.ProgressClamped)
}

func TestRegenerateCleanupFailure(t *testing.T) {
	h := host.NewMemory(host.WithRemoveError(stderrors.New("page is locked")))
	h.Document().AddPage(screensPage)
	rec := &progress.Recorder{}

	_, err := newEngine(t, h, Options{}).Regenerate(context.Background(), rec)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeRegenerateCleanup))

	errs := rec.Errors()
	require.Len(t, errs, 1)
	require.Equal(t, string(errors.ErrCodeRegenerateCleanup), errs[0].Code)
	require.Contains(t, errs[0].Message, "page is locked")
	require.Equal(t, []int{10}, rec.Percents())
	require.Len(t, h.Document().Pages, 1)
	require.Empty(t, h.Document().Pages[0].Nodes)
}

func TestCancelBetweenScreens(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &progress.Recorder{}
	em := progress.Multi(rec, progress.Func(func(ev progress.Event) {
		if ev.Phase == progress.PhaseScreens && ev.Percent >= 44 {
			cancel()
		}
	}))

	h := host.NewMemory()
	res, err := newEngine(t, h, Options{}).CreateEverything(ctx, em)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeCancelled))

	require.Len(t, res.Screens, 4)
	require.Len(t, h.Document().Page(screensPage).Nodes, 4)
	last, _ := rec.Last()
	require.Equal(t, progress.TypeError, last.Type)
	require.Equal(t, string(errors.ErrCodeCancelled), last.Code)
}

func TestBusy(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	blocking := progress.Func(func(progress.Event) {
		once.Do(func() {
			close(started)
			<-release
		})
	})

	e := newEngine(t, host.NewMemory(), Options{})
	done := make(chan error, 1)
	go func() {
		_, err := e.CreateEverything(context.Background(), blocking)
		done <- err
	}()
	<-started

	rec := &progress.Recorder{}
	_, err := e.CreateStylesOnly(context.Background(), rec)
	require.True(t, errors.Is(err, errors.ErrCodeBusy))
	require.Len(t, rec.Errors(), 1)

	close(release)
	require.NoError(t, <-done)
}

func TestCreateStylesOnly(t *testing.T) {
	h := host.NewMemory()
	rec := &progress.Recorder{}
	res, err := newEngine(t, h, Options{}).CreateStylesOnly(context.Background(), rec)
	require.NoError(t, err)

	require.Equal(t, []int{20, 100}, rec.Percents())
	require.Empty(t, res.Screens)
	stats := h.Document().Stats()
	require.Equal(t, 0, stats.Pages)
	require.Equal(t, 30, stats.PaintStyles)
	require.Equal(t, 6, stats.TextStyles)

	h1 := h.Document().TextStyles[0]
	require.Equal(t, "Typography/H1", h1.Name)
	require.Equal(t, fonts.FontRef{Family: "Inter", Style: fonts.Bold}, h1.Font)
}

func TestStylesAreIdempotent(t *testing.T) {
	h := host.NewMemory()
	e := newEngine(t, h, Options{})
	for range 2 {
		_, err := e.CreateStylesOnly(context.Background(), nil)
		require.NoError(t, err)
	}
	require.Equal(t, 30, h.Document().Stats().PaintStyles)
	require.Equal(t, 6, h.Document().Stats().TextStyles)
}

func TestCreateFlowMap(t *testing.T) {
	h := host.NewMemory()
	rec := &progress.Recorder{}
	res, err := newEngine(t, h, Options{}).CreateFlowMap(context.Background(), rec)
	require.NoError(t, err)
	require.Equal(t, []int{20, 100}, rec.Percents())

	require.Equal(t, 17, res.FlowNodes)
	require.Equal(t, 16, res.FlowEdges)
	require.Equal(t, []flow.Edge{
		{From: "Lesson View", To: "Practice"},
		{From: "Lesson View", To: "Exam Config"},
	}, res.FlowWarnings)

	page := h.Document().Page(flowPage)
	require.NotNil(t, page)
	require.Len(t, page.Nodes, 17+2*16)
	for _, n := range page.Nodes {
		require.NoError(t, doc.Validate(n))
	}
}

func TestCreateFlowMapStrict(t *testing.T) {
	h := host.NewMemory()
	rec := &progress.Recorder{}
	_, err := newEngine(t, h, Options{StrictFlow: true}).CreateFlowMap(context.Background(), rec)
	require.True(t, errors.Is(err, errors.ErrCodeDanglingFlowEdge))

	var dangling *flow.DanglingEdgeError
	require.ErrorAs(t, err, &dangling)
	require.Len(t, dangling.Edges, 2)
	require.Nil(t, h.Document().Page(flowPage))
	require.Len(t, rec.Errors(), 1)
}

func TestFontFallback(t *testing.T) {
	h := host.NewMemory(host.WithFonts(
		fonts.FontRef{Family: "Arial", Style: fonts.Regular},
		fonts.FontRef{Family: "Roboto", Style: fonts.Regular},
	))
	res, err := newEngine(t, h, Options{}).CreateStylesOnly(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "Roboto", res.Fonts.Regular.Family)
	require.Equal(t, res.Fonts.Regular, res.Fonts.Bold)
}

func TestFontLoadFailureContinues(t *testing.T) {
	interBold := fonts.FontRef{Family: "Inter", Style: fonts.Bold}
	h := host.NewMemory(host.WithLoadError(interBold, stderrors.New("corrupt font file")))
	rec := &progress.Recorder{}

	res, err := newEngine(t, h, Options{}).CreateEverything(context.Background(), rec)
	require.NoError(t, err)
	require.Len(t, res.FontErrors, 1)
	require.Equal(t, interBold, res.FontErrors[0].Font)
	require.Equal(t, res.Fonts.Regular, res.Fonts.Bold)
	require.Empty(t, rec.Errors())
	require.Len(t, res.Screens, 34)
}

func TestFontListFailureUsesSystemFont(t *testing.T) {
	h := host.NewMemory(host.WithFontListError(stderrors.New("no font service")))
	res, err := newEngine(t, h, Options{}).CreateStylesOnly(context.Background(), nil)
	require.NoError(t, err)
	require.True(t, res.Fonts.Regular.IsSystem())
	require.True(t, res.Fonts.Bold.IsSystem())
}

func TestMissingRoleAbortsBatch(t *testing.T) {
	tk, err := tokens.Default()
	require.NoError(t, err)
	delete(tk.Dark, "danger")

	h := host.NewMemory()
	rec := &progress.Recorder{}
	_, err = newEngine(t, h, Options{Tokens: tk}).CreateEverything(context.Background(), rec)
	require.True(t, errors.Is(err, errors.ErrCodeMissingRole))

	var missing *theme.MissingRoleError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, theme.Danger, missing.Role)

	errs := rec.Errors()
	require.Len(t, errs, 1)
	require.Equal(t, progress.PhaseColorStyles, errs[0].Phase)
	require.Empty(t, h.Document().Pages)
}

func TestParallelMatchesSequential(t *testing.T) {
	build := func(workers int) *doc.Document {
		h := host.NewMemory()
		_, err := newEngine(t, h, Options{Workers: workers}).CreateEverything(context.Background(), nil)
		require.NoError(t, err)
		return h.Document()
	}
	seq, par := build(1), build(4)

	sp, pp := seq.Page(screensPage), par.Page(screensPage)
	require.Len(t, pp.Nodes, len(sp.Nodes))
	for i := range sp.Nodes {
		require.Equal(t, sp.Nodes[i].Name, pp.Nodes[i].Name)
		require.Equal(t, sp.Nodes[i].Geometry, pp.Nodes[i].Geometry)
		require.Equal(t, sp.Nodes[i].Texts(), pp.Nodes[i].Texts())
	}
}

func TestHandleAndServe(t *testing.T) {
	h := host.NewMemory()
	e := newEngine(t, h, Options{})
	rec := &progress.Recorder{}

	cmds := make(chan Command, 4)
	cmds <- Command{Type: "create-styles"}
	cmds <- Command{Type: "bogus"}
	cmds <- Command{Type: "create-flow"}
	cmds <- Command{Type: CmdClose}
	require.NoError(t, e.Serve(context.Background(), cmds, rec))

	errs := rec.Errors()
	require.Len(t, errs, 1)
	require.Equal(t, string(errors.ErrCodeUnknownCommand), errs[0].Code)
	require.NotNil(t, h.Document().Page(flowPage))
	require.Equal(t, 30, h.Document().Stats().PaintStyles)

	res, err := e.Handle(context.Background(), Command{Type: CmdClose}, rec)
	require.NoError(t, err)
	require.Nil(t, res)
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := newEngine(t, host.NewMemory(), Options{}).Serve(ctx, make(chan Command), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptions(t *testing.T) {
	var o Options
	require.NoError(t, o.ValidateAndSetDefaults())
	require.Equal(t, DefaultPagePrefix, o.PagePrefix)
	require.Equal(t, "Inter", o.PreferredFont)
	require.Equal(t, 1, o.Workers)
	require.Equal(t, 80.0, o.Grid.ColumnGap)
	require.Equal(t, "📱 DDA Mobile — All Screens", o.ScreensPage())
	require.True(t, strings.HasSuffix(o.FlowPage(), "DDA Mobile — Flow Map"))
	require.NotNil(t, o.Catalog)
	require.NotNil(t, o.Tokens)
	require.NotNil(t, o.Registry)

	custom := Options{PagePrefix: "Demo"}
	require.NoError(t, custom.ValidateAndSetDefaults())
	require.True(t, strings.Contains(custom.ScreensPage(), "Demo"))

	for _, bad := range []Options{{Workers: -1}, {Workers: MaxWorkers + 1}, {PagePrefix: "bad\x00"}} {
		require.True(t, errors.Is(bad.ValidateAndSetDefaults(), errors.ErrCodeInvalidOptions), bad)
	}

	_, err := New(nil, Options{})
	require.Error(t, err)
}

type countingHooks struct {
	observability.NoopEngineHooks
	mu        sync.Mutex
	started   []string
	completed []error
	screens   int
	fallbacks int
	phases    []int
	traced    int
}

type traceKey struct{}

func (h *countingHooks) OnPhase(ctx context.Context, _, _ string, percent int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.phases = append(h.phases, percent)
	if ctx.Value(traceKey{}) != nil {
		h.traced++
	}
}

func (h *countingHooks) OnBatchStart(_ context.Context, _, op string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = append(h.started, op)
}

func (h *countingHooks) OnBatchComplete(_ context.Context, _, _ string, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = append(h.completed, err)
}

func (h *countingHooks) OnScreen(_ context.Context, _, _ string, fallback bool, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.screens++
	if fallback {
		h.fallbacks++
	}
}

func TestEngineHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetEngineHooks(hooks)
	t.Cleanup(observability.Reset)

	ctx := context.WithValue(context.Background(), traceKey{}, "batch-1")
	_, err := newEngine(t, host.NewMemory(), Options{}).CreateEverything(ctx, nil)
	require.NoError(t, err)

	require.Equal(t, []string{string(OpCreateAll)}, hooks.started)
	require.NotEmpty(t, hooks.phases)
	require.Equal(t, len(hooks.phases), hooks.traced, "phase hooks must see the caller's context")
	require.Equal(t, []error{nil}, hooks.completed)
	require.Equal(t, 34, hooks.screens)
	require.Equal(t, 7, hooks.fallbacks)
}
