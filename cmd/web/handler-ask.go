package main

import (
	"net/http"
	"net/url"
)

// ask submits one interrogation question. For htmx requests only the
// conversation fragment is returned; plain form posts follow the
// post/redirect/get pattern back to the game page.
func (app *application) ask(w http.ResponseWriter, r *http.Request) {
	gameID, session, err := app.currentGame(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if session == nil || !session.Active() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	suspect := r.PostFormValue("suspect")
	if !session.Case.HasSuspect(suspect) {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	question := r.PostFormValue("question")

	app.engine.Ask(r.Context(), session, suspect, question)

	if err = app.games.Put(r.Context(), gameID, session); err != nil {
		app.serverError(w, r, err)
		return
	}

	if app.htmx.NewHandler(w, r).IsHxRequest() {
		app.renderTemplate(w, r, http.StatusOK, "game", "conversation", newGameTemplateData(r, session))
		return
	}

	http.Redirect(w, r, "/?suspect="+url.QueryEscape(suspect), http.StatusSeeOther)
}
