package compose

import (
	"fmt"

	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/theme"
)

func examConfig(frame *doc.Node, env Env) error {
	k := newKit(env)
	config := k.box("Config", 20, 100, 335, 300).Fill(k.c.surface).Radius(16).
		WithLayout(doc.AutoLayout{Mode: doc.LayoutVertical, ItemSpacing: 20}.Padding(24, 20, 24, 20)).
		Append(
			k.text("İmtahan növü:", 14, true, k.c.text),
			k.button("🎯 Simulyator", Primary),
			k.button("📋 Yekun imtahan", Secondary),
			k.text("Sual sayı: 10", 14, true, k.c.text),
		)
	frame.Append(
		k.headerWithBack("İmtahan Tənzimləmələri"),
		config,
		k.buttonAt("İmtahana başla", Primary, 40, 450, 295, 44),
	)
	return nil
}

// examRunning is drawn dark regardless of theme.
func examRunning(frame *doc.Node, env Env) error {
	k := newKit(env)
	frame.Fills = []doc.Paint{doc.Solid(gray900)}

	frame.Append(k.box("Timer Bar", 0, 0, FrameWidth, 60).Fill(theme.Black.WithAlpha(0.8)).
		Append(k.centered("⏱️ 14:34", 18, true, theme.White, 100).At(137.5, 21)))

	const answered = 3
	for i := range 10 {
		x := 20 + float64(i%2)*175
		y := 80 + float64(i/2)*90
		thumb := k.box(fmt.Sprintf("Question %d", i+1), x, y, 160, 80).Fill(gray800).Radius(12).
			Append(k.text(fmt.Sprintf("%d", i+1), 16, true, theme.White).At(16, 12))
		if i < answered {
			thumb.Append(k.box("Answered", 120, 12, 24, 24).Fill(k.c.brand).Radius(12).
				Append(k.text("✓", 14, true, theme.White).At(7, 5)))
		}
		thumb.Append(k.text("Sual məzmunu...", 12, false, theme.White.WithAlpha(0.7)).At(16, 52))
		frame.Append(thumb)
	}

	current := k.box("Current Question", 20, 580, 335, 200).Fill(gray800).Radius(16).
		Append(k.text("4. Piyada keçidinə yaxınlaşarkən nə etməli?", 14, true, theme.White).At(16, 16).Size(303, 28))
	for i, opt := range []string{"A) Sürəti artırmaq", "B) Sürəti azaltmaq", "C) Siqnal vermək", "D) Dayanmaq"} {
		current.Append(k.text(opt, 12, false, theme.White.WithAlpha(0.8)).At(16, 60+float64(i)*25))
	}
	frame.Append(current)
	return nil
}

// results returns the score screen for a passed or failed exam.
func results(passed bool) Func {
	return func(frame *doc.Node, env Env) error {
		k := newKit(env)
		score, verdict, ink := "5/10", "😔 Keçmədiniz", k.c.danger
		if passed {
			score, verdict, ink = "8/10", "🎉 Keçdiniz!", k.c.brand
		}
		card := k.box("Score", 20, 150, 335, 200).Fill(k.c.surface).Radius(16).Shadow(doc.DropShadow(0.1, 4, 8)).
			Append(
				k.centered(score, 48, true, ink, 120).Size(120, 48).At(107.5, 40),
				k.centered(verdict, 20, true, k.c.text, 200).At(67.5, 100),
				k.centered("Vaxt: 12:45", 14, false, k.c.muted, 100).At(117.5, 140),
			)
		frame.Append(
			k.headerWithBack("İmtahan Nəticəsi"),
			card,
			k.buttonAt("Yenidən cəhd et", Primary, 40, 400, 295, 44),
			k.buttonAt("Səhvləri göstər", Secondary, 40, 460, 295, 44),
		)
		return nil
	}
}
