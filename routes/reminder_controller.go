package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbachinger/taeglich/app"
	"github.com/mbachinger/taeglich/httpx"
	"github.com/mbachinger/taeglich/log"
	"github.com/mbachinger/taeglich/reminder"
)

func ReminderStatus(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, app.Status())
	}
}

func ReminderPermission(app app.App) http.HandlerFunc {
	type permissionRequest struct {
		Decision string `json:"decision"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		req := permissionRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		state, err := app.RequestPermission(reminder.Decision(req.Decision))
		if err != nil {
			reminderError(w, r, app, state, err)
			return
		}

		render.JSON(w, r, app.Status())
	}
}

func ReminderToggle(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := app.Toggle()
		if err != nil {
			reminderError(w, r, app, state, err)
			return
		}

		render.JSON(w, r, app.Status())
	}
}

// reminderError maps scheduler errors onto conflict-ish statuses; the
// status payload still tells the client what state it ended up in.
func reminderError(w http.ResponseWriter, r *http.Request, app app.App, state reminder.State, err error) {
	switch {
	case errors.Is(err, reminder.ErrBadDecision):
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "reminder.decision")
	case errors.Is(err, reminder.ErrUnsupported),
		errors.Is(err, reminder.ErrDenied),
		errors.Is(err, reminder.ErrAlreadyDecided),
		errors.Is(err, reminder.ErrNotGranted):
		log.Debugf("reminder.conflict: %s (state %s)", err, state)
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, app.Status())
	default:
		httpx.LogInternalError(w, "reminder.flags", err)
	}
}
