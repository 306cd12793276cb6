package compose

import (
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/theme"
)

// Fixed tints that have no theme role.
var (
	gray100   = theme.MustHex("#f3f4f6")
	gray200   = theme.MustHex("#e5e7eb")
	gray300   = theme.MustHex("#d1d5db")
	gray400   = theme.MustHex("#9ca3af")
	gray500   = theme.MustHex("#6b7280")
	gray600   = theme.MustHex("#4b5563")
	gray700   = theme.MustHex("#374151")
	gray800   = theme.MustHex("#1f2937")
	gray900   = theme.MustHex("#111827")
	green50   = theme.MustHex("#f0fdf4")
	green100  = theme.MustHex("#dcfce7")
	green800  = theme.MustHex("#065f46")
	blue100   = theme.MustHex("#dbeafe")
	blue800   = theme.MustHex("#1e40af")
	offWhite  = theme.MustHex("#f9fafb")
	tabLabels = []string{"🏠 Ana", "📚 Təlimlər", "🧪 İmtahan", "🛍️ Mağaza", "➕ Daha"}
)

// colors is the per-theme palette a composer draws with.
type colors struct {
	bg, surface, text, muted, faint, brand, border, danger theme.Color

	soft, softText  theme.Color
	field, fieldRim theme.Color
	locked, body    theme.Color
	tint            theme.Color
	offText, offBG  theme.Color
}

func paletteFor(tc theme.Context) colors {
	c := colors{
		bg:      tc.Color(theme.Background),
		surface: tc.Color(theme.Surface),
		text:    tc.Color(theme.TextPrimary),
		muted:   tc.Color(theme.TextSecondary),
		faint:   tc.Color(theme.TextMuted),
		brand:   tc.Color(theme.Brand),
		border:  tc.Color(theme.Border),
		danger:  tc.Color(theme.Danger),

		soft:     gray100,
		softText: tc.Pick(gray700, offWhite),
		field:    tc.Pick(theme.White, gray700),
		fieldRim: tc.Pick(gray200, gray600),
		locked:   offWhite,
		body:     tc.Pick(gray700, gray300),
		tint:     green50,
		offText:  tc.Pick(gray400, gray500),
		offBG:    gray200,
	}
	if tc.IsDark {
		c.muted = c.faint
		c.soft = c.surface.Mix(c.text, 0.12)
		c.offBG = c.soft
		c.locked = c.surface.Mix(c.bg, 0.5)
		c.tint = c.surface.Mix(c.brand, 0.18)
	}
	return c
}

// Variant selects a button style.
type Variant int

const (
	Primary Variant = iota
	Secondary
	Disabled
)

// kit builds the recurring pieces of a screen for one Env.
type kit struct {
	env Env
	c   colors
}

func newKit(env Env) kit {
	return kit{env: env, c: paletteFor(env.Theme)}
}

func (k kit) text(s string, size float64, bold bool, fill theme.Color) *doc.Node {
	return doc.NewText(s, k.env.Fonts.Pick(bold), size, fill)
}

// centered returns a text run of fixed width with centered alignment.
func (k kit) centered(s string, size float64, bold bool, fill theme.Color, w float64) *doc.Node {
	return k.text(s, size, bold, fill).Size(w, size).Aligned(doc.AlignCenter, doc.AlignCenter)
}

func (k kit) box(name string, x, y, w, h float64) *doc.Node {
	return doc.NewContainer(name, doc.Rect{X: x, Y: y, W: w, H: h})
}

// card is a surface-filled rounded box with a soft shadow.
func (k kit) card(name string, x, y, w, h, radius float64) *doc.Node {
	return k.box(name, x, y, w, h).Fill(k.c.surface).Radius(radius).Shadow(doc.DropShadow(0.1, 2, 4))
}

func (k kit) header(title string) *doc.Node {
	return k.box("Header", 0, 0, FrameWidth, 60).
		Fill(k.c.surface).
		Stroke(k.c.border, 1).
		Append(k.text(title, 16, true, k.c.text).At(20, 22))
}

func (k kit) headerWithBack(title string) *doc.Node {
	h := k.box("Header", 0, 0, FrameWidth, 60).Fill(k.c.surface).Stroke(k.c.border, 1)
	back := k.box("Back", 20, 12, 36, 36).Fill(k.c.soft).Radius(8).
		Append(k.text("←", 16, false, k.c.softText).At(10, 10))
	return h.Append(back, k.text(title, 16, true, k.c.text).At(70, 22))
}

// tabBar draws the bottom navigation with tab active highlighted.
func (k kit) tabBar(active int) *doc.Node {
	bar := k.box("Tab Bar", 0, 732, FrameWidth, 80).Fill(k.c.surface).Stroke(k.c.border, 1)
	for i, label := range tabLabels {
		fill := k.c.muted
		if i == active {
			fill = k.c.brand
		}
		bar.Append(k.text(label, 10, i == active, fill).At(float64(15+i*75), 25))
	}
	return bar
}

func (k kit) button(label string, v Variant) *doc.Node {
	return k.buttonAt(label, v, 0, 0, 295, 44)
}

// buttonAt places a button and fits its label to the box.
func (k kit) buttonAt(label string, v Variant, x, y, w, h float64) *doc.Node {
	fill, ink := k.c.brand, theme.White
	switch v {
	case Secondary:
		fill, ink = k.c.soft, k.c.softText
	case Disabled:
		fill, ink = k.c.offBG, k.c.offText
	}
	lw := max(w-40, 0)
	ly := max((h-14)/2, 0)
	return k.box("Button: "+label, x, y, w, h).Fill(fill).Radius(12).
		Append(k.centered(label, 14, true, ink, lw).At(20, ly))
}

func (k kit) input(placeholder string) *doc.Node {
	return k.inputAt(placeholder, 0, 0, 295, 44)
}

func (k kit) inputAt(placeholder string, x, y, w, h float64) *doc.Node {
	return k.box("Input: "+placeholder, x, y, w, h).
		Fill(k.c.field).Radius(12).Stroke(k.c.fieldRim, 1).
		Append(k.text(placeholder, 14, false, gray400).At(16, 15))
}

// actionCard is a home screen shortcut. Locked cards are dimmed and show a
// padlock before the title.
func (k kit) actionCard(title string, locked bool, x, y float64) *doc.Node {
	fill, ink := k.c.surface, k.c.text
	if locked {
		fill, ink = k.c.locked, k.c.faint
	}
	card := k.box("Action: "+title, x, y, 160, 80).Fill(fill).Radius(12).Shadow(doc.DropShadow(0.1, 2, 4))
	tx, tw := 16.0, 128.0
	if locked {
		card.Append(k.text("🔒", 16, false, ink).At(16, 16))
		tx, tw = 45, 99
	}
	return card.Append(k.text(title, 14, true, ink).At(tx, 30).Size(tw, 28))
}

// progressBar draws a track with a brand fill for pct in [0,100].
func (k kit) progressBar(x, y, w, h, pct float64) *doc.Node {
	pct = min(max(pct, 0), 100)
	track := k.box("Progress", x, y, w, h).Fill(gray200).Radius(h / 2)
	if pct > 0 {
		track.Append(k.box("Progress Fill", 0, 0, w*pct/100, h).Fill(k.c.brand).Radius(h / 2))
	}
	return track
}

func (k kit) chatHeader() *doc.Node {
	h := k.box("Chat Header", 0, 0, FrameWidth, 80).Fill(k.c.surface).Stroke(k.c.border, 1)
	back := k.box("Back", 20, 22, 36, 36).Fill(k.c.soft).Radius(8).
		Append(k.text("←", 16, false, k.c.softText).At(10, 10))
	avatar := k.box("Avatar", 70, 20, 40, 40).Fill(k.c.brand).Radius(20).
		Append(k.text("🤖", 20, false, theme.White).At(10, 10))
	return h.Append(
		back,
		avatar,
		k.text("DDA.az AI Köməkçi", 16, true, k.c.text).At(120, 22),
		k.text("● Onlayn", 12, false, k.c.brand).At(120, 44),
	)
}

// row is a titled list entry.
type row struct {
	title, detail string
}

// list stacks rows as cards under the top bar.
func (k kit) list(top float64, rows []row) []*doc.Node {
	out := make([]*doc.Node, 0, len(rows))
	for i, r := range rows {
		out = append(out, k.card(r.title, 20, top+float64(i)*74, 335, 64, 12).Append(
			k.text(r.title, 14, true, k.c.text).At(16, 14),
			k.text(r.detail, 12, false, k.c.muted).At(16, 36),
		))
	}
	return out
}
