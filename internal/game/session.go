// Package game holds the per-play-through state machine. A Session moves
// from uninitialized to active on successful case generation, straight to
// over when generation fails, and from active to over only via an
// accusation. It is the only mutable entity in the game and is owned by
// whoever drives the play loop; it is not safe for concurrent use.
package game

import (
	"context"
	"log/slog"
	"strings"

	"github.com/myrjola/caseclosed/internal/agent"
	"github.com/myrjola/caseclosed/internal/casegen"
	"github.com/myrjola/caseclosed/internal/dialogue"
	"github.com/myrjola/caseclosed/internal/errors"
	"github.com/myrjola/caseclosed/internal/models"
)

// TotalQuestions is the question budget for one play-through.
const TotalQuestions = 10

// Session is one complete play-through's mutable state. The zero value is
// the uninitialized state; Start moves it to active (or to a failed,
// game-over state when generation fails).
type Session struct {
	Case       *models.Case   `json:"case,omitempty"`
	Scene      map[string]any `json:"scene,omitempty"`
	Characters map[string]any `json:"characters,omitempty"`

	RemainingQuestions int                      `json:"remaining_questions"`
	Histories          map[string][]models.Turn `json:"histories,omitempty"`
	GameOver           bool                     `json:"game_over"`
	Accused            string                   `json:"accused,omitempty"`
	Outcome            *models.Outcome          `json:"outcome,omitempty"`

	InitFailed bool   `json:"init_failed"`
	InitError  string `json:"init_error,omitempty"`
}

// Engine wires a Session to the generation pipeline and dialogue resolver.
// It holds no game state itself, so one Engine serves any number of
// independent sessions.
type Engine struct {
	pipeline agent.Pipeline
	resolver *dialogue.Resolver
	logger   *slog.Logger
}

func NewEngine(pipeline agent.Pipeline, logger *slog.Logger) *Engine {
	return &Engine{
		pipeline: pipeline,
		resolver: dialogue.NewResolver(pipeline, logger),
		logger:   logger,
	}
}

// Start generates a case and initializes the session. When generation
// fails, the session enters a permanent failed state with a human-readable
// message and a zero question budget; the error is never propagated.
func (e *Engine) Start(ctx context.Context) *Session {
	generated, err := casegen.Generate(ctx, e.pipeline)
	if err != nil {
		e.logger.LogAttrs(ctx, slog.LevelError, "case generation failed", errors.SlogError(err))
		return &Session{
			GameOver:   true,
			InitFailed: true,
			InitError:  "Failed to generate the case: " + err.Error(),
		}
	}

	for _, warning := range generated.Warnings {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "case generation warning", slog.String("warning", warning))
	}

	histories := make(map[string][]models.Turn, len(generated.Case.Suspects))
	for _, s := range generated.Case.Suspects {
		histories[s.Name] = nil
	}

	return &Session{
		Case:               generated.Case,
		Scene:              generated.Scene,
		Characters:         generated.Characters,
		RemainingQuestions: TotalQuestions,
		Histories:          histories,
	}
}

// Ask submits one question to a suspect. It is a no-op when the question is
// blank, the session is over, or the budget is exhausted. Otherwise it
// spends one question, resolves the answer through the dialogue pipeline
// (with its in-character fallbacks), sanitizes it, and appends the turn to
// the suspect's history. Ask is the only mutator of histories and of the
// question counter.
func (e *Engine) Ask(ctx context.Context, s *Session, suspectName, question string) {
	question = strings.TrimSpace(question)
	if question == "" || s.GameOver || s.RemainingQuestions <= 0 || s.Case == nil {
		return
	}

	s.RemainingQuestions--

	answer := e.resolver.Answer(ctx, dialogue.Request{
		Case:              s.Case,
		SuspectName:       suspectName,
		History:           s.Histories[suspectName],
		Question:          question,
		SceneContext:      casegen.MarshalContext(s.Scene),
		CharactersContext: casegen.MarshalContext(s.Characters),
	})
	answer = dialogue.Clean(answer)

	if s.Histories == nil {
		s.Histories = make(map[string][]models.Turn)
	}
	s.Histories[suspectName] = append(s.Histories[suspectName], models.Turn{
		Question: question,
		Answer:   answer,
	})
}

// Accuse closes the case against the named suspect. A second call after the
// session is over is a silent no-op. Running out of questions does not end
// the game by itself; the player still has to accuse.
func (s *Session) Accuse(accusedName string) {
	if s.GameOver || s.Case == nil {
		return
	}

	won := accusedName == s.Case.GuiltyName
	s.Accused = accusedName
	s.Outcome = &models.Outcome{
		Won:      won,
		Accused:  accusedName,
		Guilty:   s.Case.GuiltyName,
		Epilogue: epilogue(accusedName, s.Case.GuiltyName, won),
	}
	s.GameOver = true
}

// Reset clears all session state unconditionally, returning to the
// uninitialized state.
func (s *Session) Reset() {
	*s = Session{}
}

// Active reports whether the session accepts player actions.
func (s *Session) Active() bool {
	return s != nil && s.Case != nil && !s.GameOver && !s.InitFailed
}
