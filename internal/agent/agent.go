// Package agent wraps the external multi-task text-generation pipeline that
// produces case content and in-character dialogue. The pipeline is opaque:
// its task outputs are free text that may or may not contain embedded JSON,
// and depending on the backend the outputs arrive either as an ordered
// sequence or as a mapping keyed by task name. Callers are expected to run
// the raw text through the extract package and to tolerate misses.
package agent

import (
	"context"
	"fmt"
	"strings"
)

// Task names produced by the pipeline.
const (
	TaskSceneBlueprint   = "create_scene_blueprint"
	TaskDefineCharacters = "define_characters"
	TaskSuspectDialogue  = "generate_suspect_dialogue"
)

// CaseInputs seeds the one-shot case-generation call.
type CaseInputs struct {
	// Topic is the overall theme, e.g. "AI Murder Mystery".
	Topic string
	// SeedState is the default case record serialized as JSON. The pipeline
	// builds on top of it.
	SeedState string
	// Instruction is the opening player action.
	Instruction string
}

// DialogueInputs seeds a single suspect-turn call.
type DialogueInputs struct {
	Topic        string
	SystemPrompt string
	UserPrompt   string
	// SceneContext and CharactersContext carry the raw generated scene and
	// roster JSON when available. Empty strings are fine.
	SceneContext      string
	CharactersContext string
}

// contextBlock renders the optional scene and cast context for the dialogue
// prompt. It is empty when neither context is available.
func (in DialogueInputs) contextBlock() string {
	var b strings.Builder
	if in.SceneContext != "" {
		b.WriteString("\nScene context:\n")
		b.WriteString(in.SceneContext)
		b.WriteString("\n")
	}
	if in.CharactersContext != "" {
		b.WriteString("\nCast context:\n")
		b.WriteString(in.CharactersContext)
		b.WriteString("\n")
	}
	return b.String()
}

// Pipeline is the external collaborator interface. Both calls block until
// the backend responds or fails; transport and quota failures surface as
// plain errors for the caller to classify.
type Pipeline interface {
	GenerateCase(ctx context.Context, inputs CaseInputs) (*Result, error)
	GenerateDialogue(ctx context.Context, inputs DialogueInputs) (*Result, error)
}

// TaskOutput is one task's raw output.
type TaskOutput struct {
	Name string
	Raw  string
	// Payload holds backend-specific structured output when the backend
	// returns something richer than text. Text falls back to stringifying it.
	Payload any
}

// Text returns the usable raw text of the task output.
func (t TaskOutput) Text() string {
	if strings.TrimSpace(t.Raw) != "" {
		return t.Raw
	}
	if t.Payload != nil {
		if s := fmt.Sprint(t.Payload); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Result is a multi-task pipeline result. Exactly one of Tasks or ByName is
// populated depending on the backend's output shape.
type Result struct {
	Tasks  []TaskOutput
	ByName map[string]TaskOutput
	// Raw is the stringified whole result when the backend provides one.
	Raw string
}

// All returns the task outputs regardless of shape. Mapping-shaped results
// have no defined order.
func (r *Result) All() []TaskOutput {
	if r == nil {
		return nil
	}
	if len(r.Tasks) > 0 {
		return r.Tasks
	}
	out := make([]TaskOutput, 0, len(r.ByName))
	for name, task := range r.ByName {
		if task.Name == "" {
			task.Name = name
		}
		out = append(out, task)
	}
	return out
}

// Task looks up a task output by name in either shape.
func (r *Result) Task(name string) (TaskOutput, bool) {
	if r == nil {
		return TaskOutput{}, false
	}
	if task, ok := r.ByName[name]; ok {
		if task.Name == "" {
			task.Name = name
		}
		return task, true
	}
	for _, task := range r.Tasks {
		if task.Name == name {
			return task, true
		}
	}
	return TaskOutput{}, false
}

// String stringifies the whole result. It backs the last-resort dialogue
// fallback; its format is not a stable contract.
func (r *Result) String() string {
	if r == nil {
		return ""
	}
	if strings.TrimSpace(r.Raw) != "" {
		return r.Raw
	}
	parts := make([]string, 0, len(r.Tasks)+len(r.ByName))
	for _, task := range r.All() {
		parts = append(parts, task.Text())
	}
	return strings.Join(parts, "\n")
}
