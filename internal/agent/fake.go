package agent

import (
	"context"
	"fmt"
)

const fakeScene = "```json\n" +
	`{
  "scene_id": "helix-lab-3",
  "location": "Helix Robotics lab, third floor",
  "summary": "The storm cut the mains just past midnight. The body of Victor Hale lies beside the charging rig, electrocuted by the prototype smart hub.",
  "present_characters": ["Victor Hale (Victim - deceased)", "Mira Sandoval (Lead Engineer)", "Owen Pratt (Facilities Manager)", "Tess Nakamura (Investor Liaison)"],
  "visible_clues": ["a bypassed breaker", "a coffee mug still warm"],
  "hidden_tension": "Tomorrow's audit would have shown who tampered with the rig."
}` + "\n```"

const fakeCharacters = "```json\n" +
	`{
  "suspects": [
    {"id": "s1", "name": "Mira Sandoval", "role": "Lead Engineer", "personality": "Guarded and exact", "secret": "Disabled the rig's safety interlock", "guilty": true},
    {"id": "s2", "name": "Owen Pratt", "role": "Facilities Manager", "personality": "Chatty, eager to please", "secret": "Sold a spare keycard"},
    {"id": "s3", "name": "Tess Nakamura", "role": "Investor Liaison", "personality": "Polished, evasive", "secret": "Falsified the demo numbers"}
  ],
  "guilty_name": "Mira Sandoval",
  "killer_id": "s1"
}` + "\n```"

// FakePipeline serves local development and tests without an API key. The
// case it generates is fixed and every suspect answer is a canned deflection.
type FakePipeline struct{}

func NewFakePipeline() *FakePipeline {
	return &FakePipeline{}
}

func (p *FakePipeline) GenerateCase(_ context.Context, _ CaseInputs) (*Result, error) {
	return &Result{
		Tasks: []TaskOutput{
			{Name: TaskSceneBlueprint, Raw: fakeScene},
			{Name: TaskDefineCharacters, Raw: fakeCharacters},
		},
	}, nil
}

func (p *FakePipeline) GenerateDialogue(_ context.Context, inputs DialogueInputs) (*Result, error) {
	answer := fmt.Sprintf(
		`{"spoken_text": "I already told the officers everything. Ask me something else about %s."}`,
		inputs.Topic)
	return &Result{
		Tasks: []TaskOutput{
			{Name: TaskSuspectDialogue, Raw: answer},
		},
	}, nil
}
