package compose

import (
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/theme"
)

func aiChat(frame *doc.Node, env Env) error {
	k := newKit(env)

	bot := k.box("AI Message", 20, 20, 280, 60).Fill(k.c.soft).Radius(16).
		Append(k.text("Salam! Yol qaydaları ilə bağlı sualınız var?", 14, false, k.c.softText).At(16, 16).Size(248, 28))
	user := k.box("User Message", 105, 100, 250, 40).Fill(k.c.brand).Radius(16).
		Append(k.text("Sarı işıqda nə etməliyəm?", 14, false, theme.White).At(16, 13))
	messages := k.box("Messages", 0, 80, FrameWidth, 600).NoFill().Append(bot, user)

	composer := k.box("Composer", 0, 732, FrameWidth, 80).Fill(k.c.surface).Stroke(k.c.border, 1).
		Append(
			k.inputAt("Sualınızı yazın...", 16, 18, 250, 44),
			k.buttonAt("Göndər", Primary, 279, 18, 80, 44),
		)

	frame.Append(k.chatHeader(), messages, composer)
	return nil
}

func chatHistory(frame *doc.Node, env Env) error {
	k := newKit(env)
	frame.Append(k.headerWithBack("Söhbət tarixçəsi"))
	frame.Append(k.list(80, []row{
		{"🤖 Yol nişanları", "Dünən • 12 mesaj"},
		{"🤖 Sürət həddi", "3 gün əvvəl • 6 mesaj"},
		{"👨‍🏫 Müəllim: Rəşad", "1 həftə əvvəl • 4 mesaj"},
	})...)
	return nil
}

func mistakes(frame *doc.Node, env Env) error {
	k := newKit(env)
	frame.Append(k.headerWithBack("Səhvlərim"))
	frame.Append(k.list(80, []row{
		{"⚠️ Sual 12: Sarı işıq", "Sizin cavab: C • Düzgün: B"},
		{"⚠️ Sual 27: Piyada keçidi", "Sizin cavab: A • Düzgün: D"},
		{"⚠️ Sual 41: Dairəvi hərəkət", "Sizin cavab: B • Düzgün: A"},
	})...)
	frame.Append(k.buttonAt("Səhvləri təkrarla", Primary, 40, 340, 295, 44))
	return nil
}
