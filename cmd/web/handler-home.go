package main

import (
	"net/http"

	"github.com/myrjola/caseclosed/internal/game"
	"github.com/myrjola/caseclosed/internal/models"
)

type homeTemplateData struct {
	BaseTemplateData
}

type failedTemplateData struct {
	BaseTemplateData
	Message string
}

type gameTemplateData struct {
	BaseTemplateData
	Case               *models.Case
	RemainingQuestions int
	Outcome            *models.Outcome
	ActiveSuspect      string
	History            []models.Turn
}

func newGameTemplateData(r *http.Request, session *game.Session) gameTemplateData {
	active := r.URL.Query().Get("suspect")
	if active == "" {
		active = r.PostFormValue("suspect")
	}
	if active != "" && !session.Case.HasSuspect(active) {
		active = ""
	}

	return gameTemplateData{
		BaseTemplateData:   newBaseTemplateData(r),
		Case:               session.Case,
		RemainingQuestions: session.RemainingQuestions,
		Outcome:            session.Outcome,
		ActiveSuspect:      active,
		History:            session.Histories[active],
	}
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	_, session, err := app.currentGame(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if session == nil {
		app.render(w, r, http.StatusOK, "home", homeTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
		})
		return
	}

	if session.InitFailed {
		app.render(w, r, http.StatusOK, "failed", failedTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			Message:          session.InitError,
		})
		return
	}

	app.render(w, r, http.StatusOK, "game", newGameTemplateData(r, session))
}
