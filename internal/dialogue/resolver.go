// Package dialogue resolves one suspect turn against the dialogue pipeline.
// The resolver never fails: pipeline errors and unusable output all degrade
// to fixed in-character fallback lines so that a single bad turn cannot
// abort the game.
package dialogue

import (
	"context"
	"log/slog"
	"strings"

	"github.com/myrjola/caseclosed/internal/agent"
	"github.com/myrjola/caseclosed/internal/casegen"
	"github.com/myrjola/caseclosed/internal/errors"
	"github.com/myrjola/caseclosed/internal/extract"
	"github.com/myrjola/caseclosed/internal/models"
	"github.com/myrjola/caseclosed/internal/prompt"
)

// maxAnswerRunes caps the last-resort stringified fallback.
const maxAnswerRunes = 400

// ThrottledLine is returned when the pipeline fails with a quota error.
const ThrottledLine = "The overhead lights flicker and the network icon turns red. " +
	"«Systems are throttled… you won't get more out of me right now,» " +
	"the suspect says, dodging your question."

// GlitchLine is returned on any other pipeline failure.
const GlitchLine = "The suspect just stares back at you. " +
	"Something in the system glitched and they refuse to answer."

// quotaMarkers identify rate-limit failures in the backend error text.
var quotaMarkers = []string{"429", "RESOURCE_EXHAUSTED", "Quota exceeded"}

// spokenTextKeys are the alias keys under which the pipeline has been seen
// to deliver the suspect's reply.
var spokenTextKeys = []string{"spoken_text", "answer", "text"}

// Request is one suspect turn. SceneContext and CharactersContext carry the
// raw generated structures when the caller has them.
type Request struct {
	Case              *models.Case
	SuspectName       string
	History           []models.Turn
	Question          string
	SceneContext      string
	CharactersContext string
}

type Resolver struct {
	pipeline agent.Pipeline
	logger   *slog.Logger
}

func NewResolver(pipeline agent.Pipeline, logger *slog.Logger) *Resolver {
	return &Resolver{
		pipeline: pipeline,
		logger:   logger.With("source", "dialogue.Resolver"),
	}
}

// Answer resolves req to a display-ready answer string. It blocks until the
// pipeline responds or fails; it never returns an error.
func (r *Resolver) Answer(ctx context.Context, req Request) string {
	inputs := agent.DialogueInputs{
		Topic:             casegen.Topic,
		SystemPrompt:      prompt.System(req.Case, req.SuspectName),
		UserPrompt:        prompt.User(req.SuspectName, req.History, req.Question),
		SceneContext:      req.SceneContext,
		CharactersContext: req.CharactersContext,
	}

	result, err := r.pipeline.GenerateDialogue(ctx, inputs)
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "dialogue pipeline failed",
			slog.String("suspect", req.SuspectName), errors.SlogError(err))
		if isQuotaError(err) {
			return ThrottledLine
		}
		return GlitchLine
	}

	// First pass: the task outputs themselves.
	for _, task := range result.All() {
		if spoken, ok := spokenText(task.Text()); ok {
			return spoken
		}
	}

	// Second pass: the stringified whole result may still contain the JSON.
	raw := result.String()
	if spoken, ok := spokenText(raw); ok {
		return spoken
	}

	// Last resort: hand back the stringified result itself, truncated. Its
	// format is not a contract of the pipeline.
	r.logger.LogAttrs(ctx, slog.LevelDebug, "no spoken text found, falling back to raw result",
		slog.String("suspect", req.SuspectName))
	return truncate(strings.TrimSpace(raw))
}

// spokenText extracts a JSON object from raw and looks up the reply under
// the known alias keys.
func spokenText(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	obj, ok := extract.JSONObject(raw)
	if !ok {
		return "", false
	}
	return extract.String(obj, spokenTextKeys...)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxAnswerRunes {
		return text
	}
	return string(runes[:maxAnswerRunes]) + "..."
}
