package compose

import (
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/theme"
)

func login(frame *doc.Node, env Env) error {
	k := newKit(env)
	frame.Fills = []doc.Paint{doc.VerticalGradient(
		env.Theme.Pick(green50, k.c.bg),
		env.Theme.Pick(green100, k.c.surface),
	)}

	logo := k.box("Logo", 0, 0, 80, 80).Fill(k.c.brand).Radius(20).
		Append(k.text("DDA", 24, true, theme.White).At(16, 26))
	brand := k.box("Brand", 0, 0, FrameWidth, 200).
		WithLayout(doc.AutoLayout{
			Mode:         doc.LayoutVertical,
			ItemSpacing:  16,
			PrimaryAlign: doc.AlignCenter,
			CounterAlign: doc.AlignCenter,
		}.Padding(60, 0, 0, 0)).
		Append(
			logo,
			k.text("DDA.az", 32, true, k.c.text),
			k.text("Sürücülük vəsiqəsi üçün hazırlıq", 16, false, k.c.muted),
		)

	form := k.box("Login Form", 20, 250, 335, 300).Fill(k.c.surface).Radius(16).
		WithLayout(doc.AutoLayout{Mode: doc.LayoutVertical, ItemSpacing: 16}.Padding(24, 20, 24, 20)).
		Append(
			k.input("📱 Telefon nömrəsi"),
			k.input("🔒 Şifrə"),
			k.button("Daxil ol", Primary),
			k.button("Qeydiyyatdan keç", Secondary),
		)

	frame.Append(brand, form)
	return nil
}

type onboardingStep struct {
	emoji, title, body string
}

var onboardingSteps = [3]onboardingStep{
	{"📚", "Nəzəriyyəni öyrən", "Video dərslər və interaktiv materiallarla yol qaydalarını mənimsə"},
	{"🧪", "Sınaq imtahanları", "Real imtahan formatında testlərlə özünü yoxla"},
	{"🤖", "AI köməkçi", "Suallarına istənilən vaxt cavab alan şəxsi köməkçin"},
}

// onboarding returns the composer for step 1..3.
func onboarding(step int) Func {
	return func(frame *doc.Node, env Env) error {
		k := newKit(env)
		s := onboardingSteps[step-1]

		dots := k.box("Dots", 0, 0, 40, 8).
			WithLayout(doc.AutoLayout{Mode: doc.LayoutHorizontal, ItemSpacing: 8})
		for i := 1; i <= len(onboardingSteps); i++ {
			fill := k.c.border
			if i == step {
				fill = k.c.brand
			}
			dots.Append(k.box("Dot", 0, 0, 8, 8).Fill(fill).Radius(4))
		}

		content := k.box("Content", 20, 200, 335, 400).
			WithLayout(doc.AutoLayout{
				Mode:         doc.LayoutVertical,
				ItemSpacing:  24,
				PrimaryAlign: doc.AlignCenter,
				CounterAlign: doc.AlignCenter,
			}).
			Append(
				k.text(s.emoji, 80, false, k.c.text),
				k.centered(s.title, 24, true, k.c.text, 295),
				k.centered(s.body, 16, false, k.c.muted, 295).Size(295, 48),
				dots,
			)

		label := "Növbəti"
		if step == len(onboardingSteps) {
			label = "Başla"
		}
		frame.Append(content, k.buttonAt(label, Primary, 40, 650, 295, 44))
		return nil
	}
}
