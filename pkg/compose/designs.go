package compose

// Default returns a registry with the built-in screen designs. Designs not
// listed here (package-details, payment, success, video, teacher,
// profile-edit, balance) are drawn by the fallback composer.
func Default() *Registry {
	r := New()
	r.MustRegister("login", login)
	r.MustRegister("onboarding1", onboarding(1))
	r.MustRegister("onboarding2", onboarding(2))
	r.MustRegister("onboarding3", onboarding(3))
	r.MustRegister("home-no-package", home(false))
	r.MustRegister("home-premium", home(true))
	r.MustRegister("topics-locked", topics(false))
	r.MustRegister("topics-unlocked", topics(true))
	r.MustRegister("store", store)
	r.MustRegister("more", more)
	r.MustRegister("packages", packages)
	r.MustRegister("lesson", lesson)
	r.MustRegister("practice", practice)
	r.MustRegister("exam-config", examConfig)
	r.MustRegister("exam-running", examRunning)
	r.MustRegister("results-pass", results(true))
	r.MustRegister("results-fail", results(false))
	r.MustRegister("ai-chat", aiChat)
	r.MustRegister("chat-history", chatHistory)
	r.MustRegister("settings", settings)
	r.MustRegister("notifications", notifications)
	r.MustRegister("transactions", transactions)
	r.MustRegister("mistakes", mistakes)
	return r
}
