package main

import (
	"net/http"
)

// reset abandons the current play-through and returns to the start page.
func (app *application) reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if gameID := app.sessionManager.GetString(ctx, gameIDSessionKey); gameID != "" {
		if err := app.games.Delete(ctx, gameID); err != nil {
			app.serverError(w, r, err)
			return
		}
	}
	app.sessionManager.Remove(ctx, gameIDSessionKey)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
