package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/screenforge/pkg/catalog"
	"github.com/matzehuels/screenforge/pkg/compose"
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/errors"
	"github.com/matzehuels/screenforge/pkg/flow"
	"github.com/matzehuels/screenforge/pkg/grid"
	"github.com/matzehuels/screenforge/pkg/observability"
	"github.com/matzehuels/screenforge/pkg/progress"
	"github.com/matzehuels/screenforge/pkg/theme"
)

func (e *Engine) createAll(ctx context.Context, b *batch) error {
	b.progress(ctx, progress.PhaseStart, 5, "🚀 Başlanır...")
	if err := e.resolveFonts(ctx, b); err != nil {
		return fmt.Errorf("fonts: %w", err)
	}

	b.progress(ctx, progress.PhaseColorStyles, 15, "🎨 Rəng stilləri...")
	th, err := e.colorStyles(ctx, b)
	if err != nil {
		return fmt.Errorf("color styles: %w", err)
	}

	b.progress(ctx, progress.PhaseTextStyles, 25, "📝 Text stilləri...")
	if err := e.textStyles(ctx, b); err != nil {
		return fmt.Errorf("text styles: %w", err)
	}

	b.progress(ctx, progress.PhaseScreens, 40, "📱 Ekranlar yaradılır...")
	page := e.host.Document().AddPage(e.opts.ScreensPage())
	screens := e.opts.Catalog.Screens
	err = e.place(ctx, b, page, screens, e.opts.Grid, th, func(i int, d catalog.Descriptor) {
		b.progress(ctx, progress.PhaseScreens, 40+i*40/len(screens), "📱 "+d.Name+" yaradıldı...")
	})
	if err != nil {
		return fmt.Errorf("screens: %w", err)
	}

	b.progress(ctx, progress.PhaseDarkVariants, 85, "🌙 Dark variantlar...")
	dark := e.opts.Catalog.DarkVariants
	band := e.opts.Grid
	band.OriginY = grid.BandOrigin(len(screens), e.opts.Grid)
	band.RowsPerPage = 0
	err = e.place(ctx, b, page, dark, band, th, func(i int, d catalog.Descriptor) {
		b.progress(ctx, progress.PhaseDarkVariants, 85+i*10/len(dark), "🌙 "+d.Name+" yaradıldı...")
	})
	if err != nil {
		return fmt.Errorf("dark variants: %w", err)
	}
	b.res.Canvas = canvas(len(screens), e.opts.Grid, len(dark), band)
	b.res.GridPages = grid.Pages(len(screens), e.opts.Grid)

	b.progress(ctx, progress.PhaseDone, 100, "✅ Tamamlandı!")
	return nil
}

// canvas returns the extent of n screens on cfg plus the dark band below
// them.
func canvas(n int, cfg grid.Config, nDark int, band grid.Config) Extent {
	w, h := grid.Bounds(n, cfg)
	if nDark > 0 {
		dw, dh := grid.Bounds(nDark, band)
		w = max(w, dw)
		h = band.OriginY - cfg.OriginY + dh
	}
	return Extent{W: w, H: h}
}

func (e *Engine) createStyles(ctx context.Context, b *batch) error {
	b.progress(ctx, progress.PhaseColorStyles, 20, "🎨 Stillər yaradılır...")
	if err := e.resolveFonts(ctx, b); err != nil {
		return fmt.Errorf("fonts: %w", err)
	}
	if _, err := e.colorStyles(ctx, b); err != nil {
		return fmt.Errorf("color styles: %w", err)
	}
	if err := e.textStyles(ctx, b); err != nil {
		return fmt.Errorf("text styles: %w", err)
	}
	b.progress(ctx, progress.PhaseDone, 100, "✅ Stillər hazır!")
	return nil
}

// regenerate reports 10 for cleanup and 20 for the restart, then maps the
// create-all stream into [20, 100] so percent keeps rising.
func (e *Engine) regenerate(ctx context.Context, b *batch) error {
	b.progress(ctx, progress.PhaseCleanup, 10, "🗑️ Təmizlənir...")
	if err := e.cleanup(ctx, b); err != nil {
		return err
	}
	b.progress(ctx, progress.PhaseStart, 20, "🚀 Yenidən yaradılır...")
	b.emit = progress.Scaled(b.emit, 20, 100)
	return e.createAll(ctx, b)
}

func (e *Engine) cleanup(ctx context.Context, b *batch) error {
	d := e.host.Document()
	for _, name := range d.PagesContaining(e.opts.PagePrefix) {
		if err := e.host.RemovePage(ctx, name); err != nil {
			return errors.Wrap(errors.ErrCodeRegenerateCleanup, err, "remove page %q", name)
		}
		b.res.Removed = append(b.res.Removed, name)
	}
	if left := d.PagesContaining(e.opts.PagePrefix); len(left) > 0 {
		return errors.New(errors.ErrCodeRegenerateCleanup, "page %q survived cleanup", left[0])
	}
	b.log.Info("removed previous output", "pages", len(b.res.Removed))
	return nil
}

func (e *Engine) createFlow(ctx context.Context, b *batch) error {
	b.progress(ctx, progress.PhaseFlow, 20, "🗺️ Flow Map yaradılır...")
	if err := e.resolveFonts(ctx, b); err != nil {
		return fmt.Errorf("fonts: %w", err)
	}

	g := flow.Build(e.opts.Catalog.Flows)
	b.res.FlowNodes, b.res.FlowEdges = len(g.Nodes), len(g.Edges)
	b.res.FlowWarnings = g.Dangling
	for _, edge := range g.Dangling {
		b.log.Warn("flow target not found, skipping edge", "from", edge.From, "to", edge.To)
	}
	if e.opts.StrictFlow {
		if err := g.Err(); err != nil {
			return fmt.Errorf("flow: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	page := e.host.Document().AddPage(e.opts.FlowPage())
	page.Add(flow.Materialize(g, b.res.Fonts, flow.DefaultStyle())...)
	b.log.Info("flow map created", "nodes", len(g.Nodes), "edges", len(g.Edges), "dangling", len(g.Dangling))
	b.progress(ctx, progress.PhaseDone, 100, "✅ Flow Map hazır!")
	return nil
}

// resolveFonts picks and loads the font pair for this batch. Failures to
// list or load fonts degrade to the system font.
func (e *Engine) resolveFonts(ctx context.Context, b *batch) error {
	e.fonts.Reset()
	available, err := e.host.AvailableFonts(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.log.Warn("listing fonts failed, using system font", "err", err)
	}

	res, err := e.fonts.Resolve(ctx, e.host, available)
	if err != nil {
		return err
	}
	for _, le := range res.Errors {
		b.log.Warn("font load failed, using system font", "font", le.Font, "err", le.Err)
	}
	b.res.Fonts = res.Context
	b.res.FontErrors = res.Errors
	b.log.Info("fonts resolved",
		"regular", res.Context.Regular,
		"bold", res.Context.Bold,
		"fallback", res.Selection.Fallback)
	return nil
}

func (e *Engine) colorStyles(ctx context.Context, b *batch) (*theme.Resolver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	th, err := e.opts.Tokens.Resolver()
	if err != nil {
		return nil, err
	}
	styles, err := e.opts.Tokens.PaintStyles()
	if err != nil {
		return nil, err
	}
	d := e.host.Document()
	for _, s := range styles {
		d.UpsertPaintStyle(s.Name, doc.Solid(s.Color))
	}
	b.res.ColorStyles = len(styles)
	b.log.Info("color styles created", "count", len(styles))
	return th, nil
}

func (e *Engine) textStyles(ctx context.Context, b *batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d := e.host.Document()
	styles := e.opts.Tokens.TextStyles(b.res.Fonts)
	for _, ts := range styles {
		d.UpsertTextStyle(ts)
	}
	b.res.TextStyles = len(styles)
	b.log.Info("text styles created", "count", len(styles))
	return nil
}

// place composes descs, positions them on cfg and attaches them to page in
// order. The context is checked between screens, so a cancelled batch only
// ever attaches whole screens. With more than one worker, screens are
// composed concurrently into detached frames first.
func (e *Engine) place(ctx context.Context, b *batch, page *doc.Page, descs []catalog.Descriptor, cfg grid.Config, th *theme.Resolver, report func(int, catalog.Descriptor)) error {
	attach := func(i int, sr ScreenResult) {
		pl := grid.Place(i, cfg)
		sr.Node.At(pl.X, pl.Y)
		sr.X, sr.Y = pl.X, pl.Y
		page.Add(sr.Node)
		b.res.Screens = append(b.res.Screens, sr)
		report(i, descs[i])
	}

	if e.opts.Workers <= 1 {
		for i, d := range descs {
			if err := ctx.Err(); err != nil {
				return err
			}
			attach(i, e.compose(ctx, b, d, th))
		}
		return nil
	}

	results := make([]ScreenResult, len(descs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, d := range descs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.compose(gctx, b, d, th)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for i, sr := range results {
		attach(i, sr)
	}
	return nil
}

func (e *Engine) compose(ctx context.Context, b *batch, d catalog.Descriptor, th *theme.Resolver) ScreenResult {
	start := time.Now()
	r := e.opts.Registry.Compose(d, compose.Env{
		Theme: th.Context(d.Dark),
		Fonts: b.res.Fonts,
	})
	sr := ScreenResult{
		ID:       d.ID,
		Name:     d.Name,
		Design:   d.Design,
		Dark:     d.Dark,
		State:    r.State,
		Duration: time.Since(start),
		Err:      r.Err,
		Node:     r.Node,
	}

	switch {
	case r.Err == nil:
		b.log.Debug("screen composed", "screen", d.Name, "duration", sr.Duration)
	case r.Err.Unregistered:
		b.log.Debug("no composer for design, drawing placeholder", "screen", d.Name, "design", d.Design)
	default:
		b.log.Warn("composer failed, drawing placeholder", "screen", d.Name, "err", r.Err)
	}
	observability.Engine().OnScreen(ctx, b.id, d.Name, r.State == compose.FallbackComposed, sr.Duration)
	return sr
}
