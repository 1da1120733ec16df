// Package casegen turns the generation pipeline's free-form output into a
// validated Case. Scene details degrade gracefully to defaults; the suspect
// roster and culprit identity are game-critical and fail hard when the
// pipeline does not deliver them.
package casegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/myrjola/caseclosed/internal/errors"
	"github.com/myrjola/caseclosed/internal/extract"
	"github.com/myrjola/caseclosed/internal/models"
)

// ErrGeneration marks fatal case-generation failures. A session that hits it
// never exposes a partial Case.
var ErrGeneration = errors.NewSentinel("case generation failed")

// Defaults used when the scene blueprint is missing or unusable.
const (
	defaultVictim  = "Unknown Victim"
	defaultTime    = "Sometime past midnight"
	defaultPlace   = "An almost empty tech office"
	defaultCause   = "Suspicious accident with smart equipment"
	defaultContext = "A storm hits the city. Backup power keeps the systems barely alive. " +
		"Only a handful of employees remain inside for a late-night push before a major demo."
	defaultSuspectName = "Unknown Suspect"
)

const (
	causeElectrocutionHub    = "Electrocution involving the Nexus-Smart-Hub prototype"
	causeElectrocutionServer = "Electrocution during the server room incident"
)

// victimPattern matches phrases like "body of Leon Vance" in the scene summary.
var victimPattern = regexp.MustCompile(`body of ([A-Z][A-Za-z]+(?: [A-Z][A-Za-z]+)*)`)

// Normalize builds a validated Case from the generated scene blueprint
// (optional) and characters structure (required).
//
// The returned warnings describe self-contradictory guilt markers in the
// generated data. They are informational; the Case always satisfies its
// invariant of exactly one guilty suspect named GuiltyName.
func Normalize(scene, characters map[string]any) (*models.Case, []string, error) {
	c := models.Case{
		Victim:  defaultVictim,
		Time:    defaultTime,
		Place:   defaultPlace,
		Cause:   defaultCause,
		Context: defaultContext,
	}

	applyScene(&c, scene)

	suspects, guiltyName, warnings, err := normalizeSuspects(characters)
	if err != nil {
		return nil, nil, err
	}
	c.Suspects = suspects
	c.GuiltyName = guiltyName

	return &c, warnings, nil
}

// applyScene derives the flavor fields from the scene blueprint. Every miss
// leaves the default untouched; nothing here is fatal.
func applyScene(c *models.Case, scene map[string]any) {
	if scene == nil {
		return
	}

	summary, _ := extract.String(scene, "summary")

	if victim := findVictim(scene, summary); victim != "" {
		c.Victim = victim
	}

	if location, ok := extract.String(scene, "location"); ok {
		c.Place = location
	}

	if timePhrase := timeFromSummary(summary); timePhrase != "" {
		c.Time = timePhrase
	}

	if cause := causeFromScene(scene, summary); cause != "" {
		c.Cause = cause
	}

	hiddenTension, _ := extract.String(scene, "hidden_tension")
	switch {
	case summary != "" && hiddenTension != "":
		c.Context = summary + " " + hiddenTension
	case summary != "":
		c.Context = summary
	case hiddenTension != "":
		c.Context = hiddenTension
	}
}

// findVictim scans the present characters for an entry marked as the victim,
// e.g. "Leon Vance (Victim - deceased)", and falls back to a "body of <Name>"
// phrase in the summary.
func findVictim(scene map[string]any, summary string) string {
	for _, ch := range extract.Strings(scene, "present_characters") {
		if strings.Contains(ch, "Victim") || strings.Contains(ch, "victim") {
			name, _, _ := strings.Cut(ch, "(")
			if name = strings.TrimSpace(name); name != "" {
				return name
			}
		}
	}
	if summary != "" {
		if m := victimPattern.FindStringSubmatch(summary); m != nil {
			return m[1]
		}
	}
	return ""
}

// timeFromSummary takes the first sentence of the summary truncated at the
// first comma, e.g. "Past midnight, during the storm. ..." yields
// "Past midnight".
func timeFromSummary(summary string) string {
	if summary == "" {
		return ""
	}
	firstSentence, _, _ := strings.Cut(summary, ".")
	timePhrase, _, _ := strings.Cut(firstSentence, ",")
	return strings.TrimSpace(timePhrase)
}

func causeFromScene(scene map[string]any, summary string) string {
	if strings.Contains(strings.ToLower(summary), "electrocut") {
		return causeElectrocutionHub
	}
	clues := strings.Join(extract.Strings(scene, "visible_clues"), " ")
	if strings.Contains(strings.ToLower(clues), "electrocut") {
		return causeElectrocutionServer
	}
	return ""
}

// normalizeSuspects validates the roster and resolves the culprit identity.
func normalizeSuspects(characters map[string]any) ([]models.Suspect, string, []string, error) {
	if characters == nil {
		return nil, "", nil, generationError("pipeline did not return a valid characters structure", nil)
	}

	rawList, ok := characters["suspects"].([]any)
	if !ok || len(rawList) == 0 {
		return nil, "", nil, generationError("characters structure has an empty or invalid suspects list", nil)
	}

	rawSuspects := make([]map[string]any, 0, len(rawList))
	for _, item := range rawList {
		if raw, isMap := item.(map[string]any); isMap {
			rawSuspects = append(rawSuspects, raw)
		}
	}
	if len(rawSuspects) == 0 {
		return nil, "", nil, generationError("characters structure has an empty or invalid suspects list", nil)
	}

	killerID := characters["killer_id"]
	guiltyName := resolveGuiltyName(characters, rawSuspects, killerID)
	if guiltyName == "" {
		return nil, "", nil, generationError("could not determine the guilty suspect from the characters structure", nil)
	}

	suspects := make([]models.Suspect, 0, len(rawSuspects))
	for _, raw := range rawSuspects {
		name, ok := extract.String(raw, "name")
		if !ok {
			name = defaultSuspectName
		}
		role, _ := extract.String(raw, "role")
		personality, _ := extract.String(raw, "personality")
		// Older pipeline revisions used secret_motivation instead of secret.
		secret, _ := extract.String(raw, "secret", "secret_motivation")
		flagged, _ := raw["guilty"].(bool)

		suspects = append(suspects, models.Suspect{
			Name:        name,
			Role:        role,
			Personality: personality,
			Secret:      secret,
			// The OR of the explicit flag, the name match, and the id match
			// guards against partially inconsistent generated data.
			Guilty: flagged || name == guiltyName || sameID(raw["id"], killerID),
		})
	}

	warnings := reconcileGuilt(suspects, guiltyName)
	if !hasGuilty(suspects) {
		return nil, "", nil, generationError("guilty name does not match any suspect",
			errors.New(fmt.Sprintf("guilty_name %q not in roster", guiltyName)))
	}

	return suspects, guiltyName, warnings, nil
}

// resolveGuiltyName tries, in order: the explicit guilty_name field, the
// suspect whose id matches killer_id, and finally any suspect flagged guilty.
func resolveGuiltyName(characters map[string]any, rawSuspects []map[string]any, killerID any) string {
	if name, ok := extract.String(characters, "guilty_name"); ok {
		return name
	}
	if killerID != nil {
		for _, raw := range rawSuspects {
			if sameID(raw["id"], killerID) {
				if name, ok := extract.String(raw, "name"); ok {
					return name
				}
			}
		}
	}
	for _, raw := range rawSuspects {
		if flagged, _ := raw["guilty"].(bool); flagged {
			if name, ok := extract.String(raw, "name"); ok {
				return name
			}
		}
	}
	return ""
}

// reconcileGuilt surfaces contradictions between the three guilt markers and
// canonicalizes the flags to the resolved guilty name so that the Case
// invariant holds. The generated data disagreeing with itself is undefined
// upstream behavior; we warn instead of silently trusting one marker.
func reconcileGuilt(suspects []models.Suspect, guiltyName string) []string {
	var warnings []string

	flaggedCount := 0
	for _, s := range suspects {
		if s.Guilty {
			flaggedCount++
			if s.Name != guiltyName {
				warnings = append(warnings,
					fmt.Sprintf("suspect %q carries a guilt marker but the resolved guilty name is %q", s.Name, guiltyName))
			}
		}
	}
	if flaggedCount != 1 {
		warnings = append(warnings,
			fmt.Sprintf("generated data marks %d suspects guilty, expected exactly one", flaggedCount))
	}

	for i := range suspects {
		suspects[i].Guilty = suspects[i].Name == guiltyName
	}

	return warnings
}

func hasGuilty(suspects []models.Suspect) bool {
	for _, s := range suspects {
		if s.Guilty {
			return true
		}
	}
	return false
}

// sameID compares generated id values loosely. JSON decoding may deliver the
// same id as a string in one task and a number in another.
func sameID(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func generationError(msg string, err error) error {
	if err == nil {
		return errors.Wrap(ErrGeneration, msg)
	}
	return errors.Wrap(errors.Join(ErrGeneration, err), msg)
}
