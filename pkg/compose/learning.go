package compose

import (
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/theme"
)

func lesson(frame *doc.Node, env Env) error {
	k := newKit(env)

	play := k.box("Play", 137.5, 70, 60, 60).Fill(theme.White.WithAlpha(0.9)).Radius(30).
		Append(k.text("▶", 20, false, k.c.brand).At(22, 20))
	video := k.box("Video", 20, 80, 335, 200).Fill(theme.Black).Radius(12).Append(play)

	tabs := k.box("Tabs", 20, 300, 335, 40).
		WithLayout(doc.AutoLayout{Mode: doc.LayoutHorizontal, ItemSpacing: 8}).
		Append(
			k.buttonAt("Video", Primary, 0, 0, 105, 32),
			k.buttonAt("Mətn", Secondary, 0, 0, 105, 32),
			k.buttonAt("Suallar", Secondary, 0, 0, 105, 32),
		)

	body := k.card("Content", 20, 360, 335, 200, 12).Append(
		k.text("Yol nişanları sürücülərə yolun vəziyyəti, hərəkət qaydaları və təhlükələr barədə məlumat verir.", 14, false, k.c.body).
			At(16, 16).Size(303, 60),
	)

	frame.Append(
		k.headerWithBack("M8: Yol nişanları"),
		video,
		tabs,
		body,
		k.buttonAt("📝 Suallar", Secondary, 20, 600, 160, 44),
		k.buttonAt("🧪 İmtahan", Primary, 195, 600, 160, 44),
	)
	return nil
}

var practiceOptions = []string{"A) Dayanmaq", "B) Sürəti azaltmaq", "C) Sürəti artırmaq", "D) Siqnal vermək"}

func practice(frame *doc.Node, env Env) error {
	k := newKit(env)
	const chosen = 1

	card := k.box("Question", 20, 100, 335, 500).Fill(k.c.surface).Radius(16).Shadow(doc.DropShadow(0.1, 2, 4))
	card.Append(
		k.text("1/5", 12, false, k.c.muted).At(16, 16),
		k.text("Sarı işıq yandıqda sürücü nə etməlidir?", 16, true, k.c.text).At(16, 40).Size(303, 40),
		k.box("Image", 16, 90, 303, 150).Fill(gray200).Radius(8).
			Append(k.text("🚦", 48, false, k.c.text).At(127.5, 51)),
	)
	for i, opt := range practiceOptions {
		fill, rim := k.c.locked, k.c.border
		dot, dotRim := theme.White, gray300
		if i == chosen {
			fill, rim = k.c.tint, k.c.brand
			dot, dotRim = k.c.brand, k.c.brand
		}
		radio := k.box("Radio", 12, 12, 16, 16).Fill(dot).Stroke(dotRim, 2).Radius(8)
		if i == chosen {
			radio.Append(k.box("Check", 5, 5, 6, 6).Fill(theme.White).Radius(3))
		}
		card.Append(k.box(opt, 16, 260+float64(i)*50, 303, 40).Fill(fill).Stroke(rim, 1).Radius(8).
			Append(radio, k.text(opt, 14, false, k.c.body).At(40, 13)))
	}

	frame.Append(
		k.headerWithBack("Sürətli Test"),
		card,
		k.buttonAt("Təsdiq et", Primary, 20, 620, 160, 40),
		k.buttonAt("Sonrakı", Secondary, 195, 620, 160, 40),
	)
	return nil
}
