package agent

import (
	"context"
	"fmt"

	"github.com/myrjola/caseclosed/internal/errors"
	"github.com/sashabaranov/go-openai"
)

const maxTokens = 4096

// scene and roster prompts instruct the model to answer with a bare JSON
// object so that the extractor has something to find even when the model
// wraps it in fences or commentary.
const sceneBlueprintPrompt = `You are the scene designer for a game themed "%s".

Current game state:
%s

Player action:
%s

Design the opening crime scene. Respond with a single JSON object with the
fields: "scene_id" (string), "location" (string), "summary" (2-4 sentences,
start with the time of night), "present_characters" (list of strings, mark
the victim like "Leon Vance (Victim - deceased)"), "visible_clues" (list of
strings) and "hidden_tension" (string).`

const defineCharactersPrompt = `You are the casting director for a game themed "%s".

Scene blueprint:
%s

Create the full cast of suspects for this scene. Respond with a single JSON
object with the fields: "suspects" (list of objects with "id", "name",
"role", "personality", "secret" and "guilty" boolean, exactly one guilty)
and "guilty_name" (the guilty suspect's name) and "killer_id" (their id).`

const suspectDialoguePrompt = `%s

%s
%s
Respond with a single JSON object: {"spoken_text": "<the suspect's answer>"}.`

// OpenAIPipeline runs the generation tasks over OpenAI chat completions,
// one completion per task, and returns them as a sequence-shaped Result.
type OpenAIPipeline struct {
	client *openai.Client
	model  string
}

func NewOpenAIPipeline(apiKey string) *OpenAIPipeline {
	return &OpenAIPipeline{
		client: openai.NewClient(apiKey),
		model:  openai.GPT3Dot5Turbo1106,
	}
}

func (p *OpenAIPipeline) complete(ctx context.Context, prompt string) (string, error) {
	completion, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     p.model,
			MaxTokens: maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("completion has no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

func (p *OpenAIPipeline) GenerateCase(ctx context.Context, inputs CaseInputs) (*Result, error) {
	scene, err := p.complete(ctx, fmt.Sprintf(sceneBlueprintPrompt, inputs.Topic, inputs.SeedState, inputs.Instruction))
	if err != nil {
		return nil, errors.Wrap(err, "generate scene blueprint")
	}
	characters, err := p.complete(ctx, fmt.Sprintf(defineCharactersPrompt, inputs.Topic, scene))
	if err != nil {
		return nil, errors.Wrap(err, "generate characters")
	}
	return &Result{
		Tasks: []TaskOutput{
			{Name: TaskSceneBlueprint, Raw: scene},
			{Name: TaskDefineCharacters, Raw: characters},
		},
	}, nil
}

func (p *OpenAIPipeline) GenerateDialogue(ctx context.Context, inputs DialogueInputs) (*Result, error) {
	raw, err := p.complete(ctx, fmt.Sprintf(suspectDialoguePrompt,
		inputs.SystemPrompt, inputs.UserPrompt, inputs.contextBlock()))
	if err != nil {
		return nil, errors.Wrap(err, "generate suspect dialogue")
	}
	return &Result{
		Tasks: []TaskOutput{
			{Name: TaskSuspectDialogue, Raw: raw},
		},
	}, nil
}
