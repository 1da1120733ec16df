// Package models holds the murder-mystery domain types. A Case is built once
// per game from generated content and is read-only afterwards; the mutable
// play-through state lives in the game package.
package models

// Suspect is one interrogable character. The Guilty flag and Secret are
// hidden background that the dialogue engine sees but the player never does.
type Suspect struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Personality string `json:"personality"`
	Secret      string `json:"secret"`
	Guilty      bool   `json:"guilty"`
}

// Case is a generated murder-mystery scenario. GuiltyName always names
// exactly one suspect in Suspects, and that suspect is the only one with
// Guilty set.
type Case struct {
	Victim     string    `json:"victim"`
	Time       string    `json:"time"`
	Place      string    `json:"place"`
	Cause      string    `json:"cause"`
	Context    string    `json:"context"`
	Suspects   []Suspect `json:"suspects"`
	GuiltyName string    `json:"guilty_name"`
}

// SuspectNames returns the roster names in case order.
func (c *Case) SuspectNames() []string {
	names := make([]string, len(c.Suspects))
	for i, s := range c.Suspects {
		names[i] = s.Name
	}
	return names
}

// HasSuspect reports whether name matches a suspect in the roster.
func (c *Case) HasSuspect(name string) bool {
	for _, s := range c.Suspects {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Turn is one question/answer exchange with a suspect.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Outcome records the accusation result. It is created once at the
// accusation transition and never changes.
type Outcome struct {
	Won      bool   `json:"won"`
	Accused  string `json:"accused"`
	Guilty   string `json:"guilty"`
	Epilogue string `json:"epilogue"`
}
