package main

import (
	"net/http"

	"github.com/myrjola/caseclosed/internal/errors"
	"github.com/myrjola/caseclosed/internal/game"
	"github.com/myrjola/caseclosed/internal/random"
	"github.com/myrjola/caseclosed/internal/repositories"
)

const gameIDSessionKey = "gameID"
const gameIDLength = 20

// currentGame loads the play-through bound to the browser session. Both
// return values are zero when the player has no game in progress.
func (app *application) currentGame(r *http.Request) (string, *game.Session, error) {
	ctx := r.Context()
	gameID := app.sessionManager.GetString(ctx, gameIDSessionKey)
	if gameID == "" {
		return "", nil, nil
	}

	session, err := app.games.Get(ctx, gameID)
	if err != nil {
		// A stale session cookie can outlive the game row.
		if errors.Is(err, repositories.ErrNoGame) {
			return gameID, nil, nil
		}
		return "", nil, err
	}
	return gameID, session, nil
}

// newGameID generates a fresh game ID and binds it to the browser session.
func (app *application) newGameID(r *http.Request) (string, error) {
	gameID, err := random.Letters(gameIDLength)
	if err != nil {
		return "", errors.Wrap(err, "generate game ID")
	}
	app.sessionManager.Put(r.Context(), gameIDSessionKey, gameID)
	return gameID, nil
}
