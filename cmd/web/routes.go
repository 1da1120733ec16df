package main

import (
	"io/fs"
	"net/http"

	"github.com/justinas/alice"
	"github.com/myrjola/caseclosed/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	staticFS, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.FileServer(http.FS(staticFS))
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", fileServer)))

	dynamic := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext)

	mux.Handle("GET /{$}", dynamic.ThenFunc(app.home))
	mux.Handle("POST /new-game", dynamic.ThenFunc(app.newGame))
	mux.Handle("POST /ask", dynamic.ThenFunc(app.ask))
	mux.Handle("POST /accuse", dynamic.ThenFunc(app.accuse))
	mux.Handle("POST /reset", dynamic.ThenFunc(app.reset))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}
