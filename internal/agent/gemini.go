package agent

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/myrjola/caseclosed/internal/errors"
	"google.golang.org/api/option"
)

// GeminiPipeline runs the generation tasks on Google Gemini. Unlike the
// OpenAI backend it returns mapping-shaped results, which exercises the
// second result shape the rest of the system has to support.
type GeminiPipeline struct {
	client *genai.Client
	model  string
}

func NewGeminiPipeline(ctx context.Context, apiKey string) (*GeminiPipeline, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "create generative client")
	}
	return &GeminiPipeline{
		client: client,
		model:  "gemini-2.5-flash",
	}, nil
}

// Close releases the underlying gRPC connection.
func (p *GeminiPipeline) Close() error {
	if err := p.client.Close(); err != nil {
		return errors.Wrap(err, "close generative client")
	}
	return nil
}

func (p *GeminiPipeline) generate(ctx context.Context, prompt string) (string, error) {
	model := p.client.GenerativeModel(p.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errors.Wrap(err, "generate content")
	}
	return responseText(resp), nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}

func (p *GeminiPipeline) GenerateCase(ctx context.Context, inputs CaseInputs) (*Result, error) {
	scene, err := p.generate(ctx, fmt.Sprintf(sceneBlueprintPrompt, inputs.Topic, inputs.SeedState, inputs.Instruction))
	if err != nil {
		return nil, errors.Wrap(err, "generate scene blueprint")
	}
	characters, err := p.generate(ctx, fmt.Sprintf(defineCharactersPrompt, inputs.Topic, scene))
	if err != nil {
		return nil, errors.Wrap(err, "generate characters")
	}
	return &Result{
		ByName: map[string]TaskOutput{
			TaskSceneBlueprint:   {Name: TaskSceneBlueprint, Raw: scene},
			TaskDefineCharacters: {Name: TaskDefineCharacters, Raw: characters},
		},
	}, nil
}

func (p *GeminiPipeline) GenerateDialogue(ctx context.Context, inputs DialogueInputs) (*Result, error) {
	raw, err := p.generate(ctx, fmt.Sprintf(suspectDialoguePrompt,
		inputs.SystemPrompt, inputs.UserPrompt, inputs.contextBlock()))
	if err != nil {
		return nil, errors.Wrap(err, "generate suspect dialogue")
	}
	return &Result{
		ByName: map[string]TaskOutput{
			TaskSuspectDialogue: {Name: TaskSuspectDialogue, Raw: raw},
		},
	}, nil
}
