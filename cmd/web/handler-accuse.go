package main

import (
	"net/http"
)

// accuse closes the case against the named suspect and ends the game.
func (app *application) accuse(w http.ResponseWriter, r *http.Request) {
	gameID, session, err := app.currentGame(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if session == nil || !session.Active() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	accused := r.PostFormValue("accused")
	if !session.Case.HasSuspect(accused) {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	session.Accuse(accused)

	if err = app.games.Put(r.Context(), gameID, session); err != nil {
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
