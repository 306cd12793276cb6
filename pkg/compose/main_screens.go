package compose

import (
	"fmt"

	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/theme"
)

var homeActions = []string{"📚 Təlimlər", "📝 Sürətli test", "🧪 İmtahan", "🤖 AI köməkçi"}

// home returns the dashboard composer. Without a package most shortcuts are
// locked and the banner advertises the store.
func home(premium bool) Func {
	return func(frame *doc.Node, env Env) error {
		k := newKit(env)

		bannerFill, bannerInk := env.Theme.Pick(blue100, gray800), env.Theme.Pick(blue800, blue100)
		bannerText, pct := "📦 Aktiv paketiniz yoxdur", 42.0
		locked := []bool{true, false, true, true}
		if premium {
			bannerFill, bannerInk = k.c.tint, env.Theme.Pick(green800, green100)
			bannerText, pct = "👑 Premium üzv - Bütün funksiyalar aktiv", 78
			locked = []bool{false, false, false, false}
		}

		banner := k.box("Banner", 20, 80, 335, 60).Fill(bannerFill).Radius(12).
			Append(k.text(bannerText, 14, false, bannerInk).At(16, 23))
		progress := k.card("Progress Card", 20, 160, 335, 80, 12).Append(
			k.text(fmt.Sprintf("İrəliləyiş: %.0f%%", pct), 14, true, k.c.text).At(16, 16),
			k.progressBar(16, 48, 303, 8, pct),
		)

		frame.Append(k.header("Salam, Tural 👋"), banner, progress)
		for i, title := range homeActions {
			x := 20 + float64(i%2)*175
			y := 260 + float64(i/2)*100
			frame.Append(k.actionCard(title, locked[i], x, y))
		}
		frame.Append(k.tabBar(0))
		return nil
	}
}

type module struct {
	title    string
	progress float64
	locked   bool
}

var (
	lockedModules = []module{
		{"M1: Ümumi müddəalar", 100, false},
		{"M2: Yol hərəkəti iştirakçıları", 45, false},
		{"M3: Svetofor siqnalları", 0, true},
		{"M4: Yol nişanları", 0, true},
		{"M5: Sürət həddi", 0, true},
	}
	openModules = []module{
		{"M1: Ümumi müddəalar", 100, false},
		{"M2: Yol hərəkəti iştirakçıları", 85, false},
		{"M3: Svetofor siqnalları", 60, false},
		{"M4: Yol nişanları", 40, false},
		{"M5: Sürət həddi", 20, false},
	}
)

// topics lists the course modules. Locked modules are dimmed and cannot be
// started.
func topics(unlocked bool) Func {
	return func(frame *doc.Node, env Env) error {
		k := newKit(env)
		frame.Append(k.header("Təlim Mövzuları"))

		mods, top := lockedModules, 80.0
		if unlocked {
			mods = openModules
			frame.Append(k.box("Premium Banner", 20, 80, 335, 50).Fill(k.c.tint).Radius(12).
				Append(k.text("🔓 Bütün təlimlər açıq - Premium üzv", 14, false, env.Theme.Pick(green800, green100)).At(16, 18)))
			top = 150
		}
		frame.Append(k.inputAt("🔍 Mövzu axtar...", 20, top, 335, 44))

		for i, m := range mods {
			fill, ink := k.c.surface, k.c.text
			if m.locked {
				fill, ink = k.c.locked, k.c.faint
			}
			card := k.box(m.title, 20, top+60+float64(i)*100, 335, 80).
				Fill(fill).Radius(12).Shadow(doc.DropShadow(0.1, 2, 4))
			x := 16.0
			if m.locked {
				card.Append(k.text("🔒", 16, false, ink).At(16, 16))
				x = 45
			}
			label, v := "Başla", Primary
			if m.locked {
				label, v = "Kilidli", Disabled
			}
			card.Append(
				k.text(m.title, 14, true, ink).At(x, 16).Size(239-12-x, 16),
				k.text(fmt.Sprintf("%.0f%% tamamlandı", m.progress), 12, false, k.c.muted).At(x, 35),
				k.progressBar(x, 58, 239-12-x, 6, m.progress),
				k.buttonAt(label, v, 239, 24, 80, 32),
			)
			frame.Append(card)
		}
		frame.Append(k.tabBar(1))
		return nil
	}
}

var books = []struct {
	title string
	price string
}{
	{"Yol Hərəkəti Qaydaları", "12 AZN"},
	{"Sürücülük Nəzəriyyəsi", "15 AZN"},
	{"İmtahan Sualları 2024", "10 AZN"},
	{"İlk Yardım Bələdçisi", "8 AZN"},
}

func store(frame *doc.Node, env Env) error {
	k := newKit(env)
	frame.Append(k.header("Mağaza"))
	for i, b := range books {
		x := 20 + float64(i%2)*175
		y := 100 + float64(i/2)*220
		cover := k.box("Cover", 16, 16, 128, 96).Fill(gray200).Radius(8).
			Append(k.text("📚", 32, false, k.c.text).At(48, 32))
		frame.Append(k.card(b.title, x, y, 160, 200, 12).Append(
			cover,
			k.text(b.title, 12, true, k.c.text).At(16, 120).Size(128, 24),
			k.text(b.price, 16, true, k.c.brand).At(16, 146),
			k.buttonAt("Səbətə at", Primary, 16, 164, 128, 28),
		))
	}
	frame.Append(k.tabBar(3))
	return nil
}

var moreMenu = []struct{ icon, title string }{
	{"📦", "Təlim Paketləri"},
	{"💰", "Balans"},
	{"📜", "Əməliyyatlar"},
	{"👨‍🏫", "Müəllimlə əlaqə"},
	{"💬", "Söhbət tarixçəsi"},
	{"⚠️", "Səhvlərim"},
	{"🔔", "Bildirişlər"},
	{"👤", "Profil"},
	{"⚙️", "Parametrlər"},
	{"🚪", "Çıxış"},
}

func more(frame *doc.Node, env Env) error {
	k := newKit(env)
	frame.Append(
		k.header("Daha çox"),
		k.card("Balance", 20, 80, 335, 60, 12).
			Append(k.text("Balans: 100 AZN • Bilet: 3", 14, true, k.c.text).At(16, 23)),
	)
	for i, item := range moreMenu {
		frame.Append(k.box(item.title, 20, 160+float64(i)*56, 335, 50).
			Fill(k.c.surface).Radius(12).Shadow(doc.DropShadow(0.05, 1, 2)).
			Append(
				k.text(item.icon, 20, false, k.c.text).At(20, 13),
				k.text(item.title, 14, false, k.c.text).At(60, 17),
				k.text("›", 16, false, k.c.faint).At(315, 16),
			))
	}
	frame.Append(k.tabBar(4))
	return nil
}

var plans = []struct {
	name, price string
	features    []string
	popular     bool
}{
	{"Basic", "15 AZN", []string{"✓ 10 video dərs", "✓ 100 test sualı", "✓ 1 sınaq imtahanı"}, false},
	{"Standart", "25 AZN", []string{"✓ Bütün video dərslər", "✓ 500+ test sualı", "✓ 5 sınaq imtahanı"}, true},
	{"Premium", "40 AZN", []string{"✓ Hər şey daxil", "✓ Limitsiz AI köməkçi", "✓ Müəllimlə əlaqə"}, false},
}

func packages(frame *doc.Node, env Env) error {
	k := newKit(env)
	frame.Append(
		k.headerWithBack("Təlim Paketləri"),
		k.box("Balance", 20, 80, 335, 60).Fill(k.c.tint).Radius(12).
			Append(k.text("Balans: 100 AZN", 16, true, k.c.brand).At(16, 22)),
	)
	for i, p := range plans {
		card := k.box(p.name, 20, 160+float64(i)*200, 335, 180).
			Fill(k.c.surface).Radius(16).Shadow(doc.DropShadow(0.1, 4, 8))
		nameInk := k.c.text
		if p.popular {
			nameInk = k.c.brand
			card.Stroke(k.c.brand, 2).Append(
				k.box("Badge", 199, 16, 120, 24).Fill(k.c.brand).Radius(12).
					Append(k.text("⭐ Ən Populyar", 12, true, theme.White).At(12, 6)),
			)
		}
		card.Append(
			k.text(p.name, 20, true, nameInk).At(16, 20),
			k.text(p.price, 28, true, k.c.brand).At(16, 50),
		)
		for j, f := range p.features {
			card.Append(k.text(f, 12, false, k.c.body).At(16, 90+float64(j)*18))
		}
		card.Append(k.buttonAt("Paketi Al - "+p.price, Primary, 16, 140, 303, 36))
		frame.Append(card)
	}
	return nil
}
