package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbachinger/taeglich/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Post("/entries", SubmitEntry(app))
	api.Get("/entries", ListEntries(app))
	api.Get("/entries/export", ExportEntries(app))
	api.Get("/entries/defaults", EntryDefaults(app))

	api.Get("/reminders", ReminderStatus(app))
	api.Post("/reminders/permission", ReminderPermission(app))
	api.Post("/reminders/toggle", ReminderToggle(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
