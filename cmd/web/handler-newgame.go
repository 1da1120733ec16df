package main

import (
	"net/http"
)

// newGame generates a fresh case and binds it to the browser session. A game
// already in progress is discarded first.
func (app *application) newGame(w http.ResponseWriter, r *http.Request) {
	if oldID := app.sessionManager.GetString(r.Context(), gameIDSessionKey); oldID != "" {
		if err := app.games.Delete(r.Context(), oldID); err != nil {
			app.serverError(w, r, err)
			return
		}
	}

	gameID, err := app.newGameID(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	session := app.engine.Start(r.Context())
	if err = app.games.Put(r.Context(), gameID, session); err != nil {
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
