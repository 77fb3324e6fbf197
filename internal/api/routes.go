package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	onboarding := api.Group("/onboarding", handler.AuthRequired)
	onboarding.Get("", handler.GetOnboarding)
	onboarding.Post("/steps/:step", handler.SubmitOnboardingStep)
	onboarding.Post("/complete", handler.CompleteOnboarding)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Put("", handler.UpdateProfile)
	profile.Put("/targets", handler.ReplaceTargets)

	api.Post("/targets/preview", handler.AuthRequired, handler.PreviewTargets)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("/:date/entries", handler.ListDayEntries)
	days.Post("/:date/entries", handler.CreateEntry)
	days.Get("/:date/summary", handler.DaySummary)

	entries := api.Group("/entries", handler.AuthRequired)
	entries.Put("/:id", handler.UpdateEntry)
	entries.Delete("/:id", handler.DeleteEntry)

	weights := api.Group("/weights", handler.AuthRequired)
	weights.Get("", handler.ListWeights)
	weights.Put("/:date", handler.UpsertWeight)
	weights.Delete("/:date", handler.DeleteWeight)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Post("/change-password", handler.ChangePassword)
	settings.Delete("/delete-account", handler.DeleteAccount)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
