// Package repositories persists play-through state. Each browser session
// owns one game row keyed by a random game ID; nothing is shared between
// sessions (see the concurrency notes in internal/game).
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/myrjola/caseclosed/internal/db"
	"github.com/myrjola/caseclosed/internal/errors"
	"github.com/myrjola/caseclosed/internal/game"
)

// ErrNoGame signals that no play-through exists for the given ID.
var ErrNoGame = errors.NewSentinel("no game found")

type GameRepository struct {
	dbs    *db.DBs
	logger *slog.Logger
}

func NewGameRepository(dbs *db.DBs, logger *slog.Logger) *GameRepository {
	return &GameRepository{
		dbs:    dbs,
		logger: logger.With("source", "GameRepository"),
	}
}

// Get loads the session stored under gameID. It returns ErrNoGame when the
// ID is unknown.
func (r *GameRepository) Get(ctx context.Context, gameID string) (*game.Session, error) {
	var state string
	stmt := `SELECT state FROM games WHERE id = ?`
	if err := r.dbs.Read.GetContext(ctx, &state, stmt, gameID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrNoGame, "read game", slog.String("game_id", gameID))
		}
		return nil, errors.Wrap(err, "read game", slog.String("game_id", gameID))
	}

	var session game.Session
	if err := json.Unmarshal([]byte(state), &session); err != nil {
		return nil, errors.Wrap(err, "unmarshal game state", slog.String("game_id", gameID))
	}
	return &session, nil
}

// Put stores the session under gameID, replacing any previous state.
func (r *GameRepository) Put(ctx context.Context, gameID string, session *game.Session) error {
	state, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "marshal game state", slog.String("game_id", gameID))
	}

	stmt := `INSERT INTO games (id, state)
VALUES (@id, @state)
ON CONFLICT (id) DO UPDATE SET state      = excluded.state,
                               updated_at = datetime('now')`
	params := []any{
		sql.Named("id", gameID),
		sql.Named("state", string(state)),
	}
	if _, err = r.dbs.ReadWrite.ExecContext(ctx, stmt, params...); err != nil {
		return errors.Wrap(err, "upsert game", slog.String("game_id", gameID))
	}
	return nil
}

// Delete removes the play-through stored under gameID. Deleting an unknown
// ID is not an error.
func (r *GameRepository) Delete(ctx context.Context, gameID string) error {
	stmt := `DELETE FROM games WHERE id = ?`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, gameID); err != nil {
		return errors.Wrap(err, "delete game", slog.String("game_id", gameID))
	}
	return nil
}
