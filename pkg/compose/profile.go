package compose

import (
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/theme"
)

var settingsSections = []struct {
	title string
	items []string
}{
	{"Hesab", []string{"👤 Profili redaktə et", "🔑 Şifrəni dəyiş", "📱 Telefon nömrəsi"}},
	{"Tətbiq", []string{"🌙 Qaranlıq rejim", "🔔 Bildirişlər", "🌐 Dil: Azərbaycan"}},
	{"Dəstək", []string{"❓ Kömək mərkəzi", "📄 İstifadə şərtləri", "🔒 Məxfilik siyasəti"}},
}

func settings(frame *doc.Node, env Env) error {
	k := newKit(env)

	avatar := k.box("Avatar", 16, 16, 48, 48).Fill(k.c.brand).Radius(24).
		Append(k.text("T", 20, true, theme.White).At(18, 12))
	profile := k.card("Profile", 20, 80, 335, 80, 12).Append(
		avatar,
		k.text("Tural Qarayev", 16, true, k.c.text).At(80, 20),
		k.text("tural@example.az", 12, false, k.c.muted).At(80, 42),
	)
	frame.Append(k.headerWithBack("Parametrlər"), profile)

	y := 180.0
	for _, s := range settingsSections {
		frame.Append(k.text(s.title, 14, true, k.c.muted).At(20, y))
		y += 30
		for _, item := range s.items {
			frame.Append(k.box(item, 20, y, 335, 44).Fill(k.c.surface).Radius(12).
				Append(
					k.text(item, 14, false, k.c.text).At(16, 14),
					k.text("›", 16, false, k.c.faint).At(311, 12),
				))
			y += 52
		}
		y += 20
	}
	return nil
}

func notifications(frame *doc.Node, env Env) error {
	k := newKit(env)
	frame.Append(k.headerWithBack("Bildirişlər"))
	frame.Append(k.list(80, []row{
		{"🔔 Yeni dərs əlavə olundu", "M9: Dayanma və parklanma"},
		{"🎉 Paket aktivləşdi", "Standart paket 30 gün aktivdir"},
		{"⏰ İmtahan xatırlatması", "Sabah saat 10:00"},
		{"💬 Müəllimdən cavab", "Sualınıza cavab verildi"},
	})...)
	return nil
}

func transactions(frame *doc.Node, env Env) error {
	k := newKit(env)
	frame.Append(k.headerWithBack("Əməliyyatlar"))
	frame.Append(k.list(80, []row{
		{"💳 Standart paket", "-25 AZN • 12.03.2024"},
		{"💰 Balans artırılması", "+50 AZN • 10.03.2024"},
		{"📚 Yol Hərəkəti Qaydaları", "-12 AZN • 02.03.2024"},
		{"💰 Balans artırılması", "+100 AZN • 28.02.2024"},
	})...)
	return nil
}
