package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/mbachinger/taeglich/app"
	"github.com/mbachinger/taeglich/export"
	"github.com/mbachinger/taeglich/httpx"
	"github.com/mbachinger/taeglich/journal"
	"github.com/mbachinger/taeglich/log"
	"github.com/mbachinger/taeglich/view"
)

func SubmitEntry(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseForm()
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_form")
			return
		}

		entry, err := journal.Build(r.PostForm, time.Now())
		if err != nil {
			var verr *journal.ValidationError
			if errors.As(err, &verr) {
				httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "entry.validate", "Bitte geben Sie ein Datum an.")
			} else {
				httpx.LogInternalError(w, "entry.build", err)
			}
			return
		}

		id, err := app.Insert(r.Context(), entry)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_entry", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id":      id,
			"message": "Eintrag erfolgreich gespeichert!",
		})
	}
}

func ListEntries(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := app.ListAll(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_entries", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"entries": view.Render(entries),
		})
	}
}

func ExportEntries(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := app.ListAll(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_entries", err)
			return
		}
		if len(entries) == 0 {
			httpx.LogStatusMsg(w, http.StatusNotFound, log.DebugLevel, "export.empty", "Keine Einträge zum Herunterladen vorhanden.")
			return
		}

		data, err := export.Marshal(entries)
		if err != nil {
			httpx.LogInternalError(w, "export.marshal", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
		_, err = w.Write(data)
		if err != nil {
			log.Errorf("export.write: %s", err)
		}
	}
}

// EntryDefaults hands the client its form prefills (today's date).
func EntryDefaults(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"entryDate": journal.DefaultDate(time.Now()),
		})
	}
}
