package casegen

import (
	"context"
	"encoding/json"

	"github.com/myrjola/caseclosed/internal/agent"
	"github.com/myrjola/caseclosed/internal/extract"
	"github.com/myrjola/caseclosed/internal/models"
)

// Topic is the theme passed to every pipeline call.
const Topic = "AI Murder Mystery"

const openingInstruction = "We are starting the game. Design the opening scene and the full cast of suspects. " +
	"Focus on a tech-office, late-night atmosphere."

// Generated is the validated output of one case-generation run. Scene and
// Characters keep the raw generated structures so that dialogue calls can
// pass them back to the pipeline as extra context.
type Generated struct {
	Case       *models.Case
	Scene      map[string]any
	Characters map[string]any
	// Warnings surface self-contradictory guilt markers in the generated
	// data. The Case is valid regardless; callers should log them.
	Warnings []string
}

// Generate runs the case-generation pipeline once and normalizes the result.
// Any failure wraps ErrGeneration; no partial Case is ever returned.
func Generate(ctx context.Context, pipeline agent.Pipeline) (*Generated, error) {
	seed, err := json.Marshal(map[string]string{
		"victim":  defaultVictim,
		"time":    defaultTime,
		"place":   defaultPlace,
		"cause":   defaultCause,
		"context": defaultContext,
	})
	if err != nil {
		return nil, generationError("marshal seed state", err)
	}

	result, err := pipeline.GenerateCase(ctx, agent.CaseInputs{
		Topic:       Topic,
		SeedState:   string(seed),
		Instruction: openingInstruction,
	})
	if err != nil {
		return nil, generationError("call generation pipeline", err)
	}

	scene, characters := splitTasks(result)

	c, warnings, err := Normalize(scene, characters)
	if err != nil {
		return nil, err
	}

	return &Generated{
		Case:       c,
		Scene:      scene,
		Characters: characters,
		Warnings:   warnings,
	}, nil
}

// splitTasks locates the scene-blueprint and characters structures in the
// pipeline result. Sequence-shaped results are scanned by content: a scene
// blueprint carries scene_id and present_characters, a characters structure
// carries suspects. Mapping-shaped results are looked up by task name.
func splitTasks(result *agent.Result) (scene, characters map[string]any) {
	if result == nil {
		return nil, nil
	}

	if len(result.Tasks) > 0 {
		for _, task := range result.Tasks {
			raw := task.Text()
			if raw == "" {
				continue
			}
			data, ok := extract.JSONObject(raw)
			if !ok {
				continue
			}
			_, hasSceneID := data["scene_id"]
			_, hasPresent := data["present_characters"]
			if hasSceneID && hasPresent {
				scene = data
			}
			if _, hasSuspects := data["suspects"]; hasSuspects {
				characters = data
			}
		}
		return scene, characters
	}

	if task, ok := result.Task(agent.TaskSceneBlueprint); ok {
		scene, _ = extract.JSONObject(task.Text())
	}
	if task, ok := result.Task(agent.TaskDefineCharacters); ok {
		characters, _ = extract.JSONObject(task.Text())
	}
	return scene, characters
}

// MarshalContext serializes a raw generated structure for passing back to
// the pipeline. It returns "" when the structure is absent.
func MarshalContext(structure map[string]any) string {
	if structure == nil {
		return ""
	}
	out, err := json.Marshal(structure)
	if err != nil {
		return ""
	}
	return string(out)
}
