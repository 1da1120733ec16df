package casegen_test

import (
	"github.com/myrjola/caseclosed/internal/casegen"
	"github.com/myrjola/caseclosed/internal/models"
	"github.com/stretchr/testify/require"
	"testing"
)

func validCharacters() map[string]any {
	return map[string]any{
		"suspects": []any{
			map[string]any{
				"id":          "s1",
				"name":        "Ada Koval",
				"role":        "CTO",
				"personality": "Cold and precise",
				"secret":      "Rigged the demo",
				"guilty":      true,
			},
			map[string]any{
				"id":          "s2",
				"name":        "Ben Ortiz",
				"role":        "Intern",
				"personality": "Nervous",
				"secret":      "Stole a badge",
			},
		},
		"guilty_name": "Ada Koval",
		"killer_id":   "s1",
	}
}

func TestNormalize_sceneDerivation(t *testing.T) {
	tests := []struct {
		name  string
		scene map[string]any
		want  func(t *testing.T, c *models.Case)
	}{
		{
			name:  "nil scene keeps defaults",
			scene: nil,
			want: func(t *testing.T, c *models.Case) {
				require.Equal(t, "Unknown Victim", c.Victim)
				require.Equal(t, "Sometime past midnight", c.Time)
				require.Equal(t, "An almost empty tech office", c.Place)
				require.Equal(t, "Suspicious accident with smart equipment", c.Cause)
			},
		},
		{
			name: "victim from present characters",
			scene: map[string]any{
				"present_characters": []any{
					"Ada Koval (CTO)",
					"Leon Vance (Victim - deceased)",
				},
			},
			want: func(t *testing.T, c *models.Case) {
				require.Equal(t, "Leon Vance", c.Victim)
			},
		},
		{
			name: "victim from summary body pattern",
			scene: map[string]any{
				"summary": "Past midnight, a storm rages. The body of Leon Vance lies by the server rack.",
			},
			want: func(t *testing.T, c *models.Case) {
				require.Equal(t, "Leon Vance", c.Victim)
			},
		},
		{
			name: "time is first sentence truncated at comma",
			scene: map[string]any{
				"summary": "Past midnight, during the outage. The office is nearly empty.",
			},
			want: func(t *testing.T, c *models.Case) {
				require.Equal(t, "Past midnight", c.Time)
			},
		},
		{
			name: "place from location",
			scene: map[string]any{
				"location": "NeoTek HQ, 14th floor",
			},
			want: func(t *testing.T, c *models.Case) {
				require.Equal(t, "NeoTek HQ, 14th floor", c.Place)
			},
		},
		{
			name: "cause from electrocution in summary",
			scene: map[string]any{
				"summary": "Past midnight. Leon Vance was electrocuted at his desk.",
			},
			want: func(t *testing.T, c *models.Case) {
				require.Equal(t, "Electrocution involving the Nexus-Smart-Hub prototype", c.Cause)
			},
		},
		{
			name: "cause from electrocution in visible clues",
			scene: map[string]any{
				"visible_clues": []any{"a scorched cable", "electrocution burns on the floor"},
			},
			want: func(t *testing.T, c *models.Case) {
				require.Equal(t, "Electrocution during the server room incident", c.Cause)
			},
		},
		{
			name: "context joins summary and hidden tension",
			scene: map[string]any{
				"summary":        "Past midnight. The demo is hours away.",
				"hidden_tension": "Everyone knew the prototype was failing.",
			},
			want: func(t *testing.T, c *models.Case) {
				require.Equal(t, "Past midnight. The demo is hours away. Everyone knew the prototype was failing.", c.Context)
			},
		},
		{
			name: "context from hidden tension only",
			scene: map[string]any{
				"hidden_tension": "Everyone knew the prototype was failing.",
			},
			want: func(t *testing.T, c *models.Case) {
				require.Equal(t, "Everyone knew the prototype was failing.", c.Context)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, warnings, err := casegen.Normalize(tt.scene, validCharacters())
			require.NoError(t, err)
			require.Empty(t, warnings)
			tt.want(t, c)
		})
	}
}

func TestNormalize_guiltyInvariant(t *testing.T) {
	c, warnings, err := casegen.Normalize(nil, validCharacters())
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, "Ada Koval", c.GuiltyName)

	guiltyCount := 0
	for _, s := range c.Suspects {
		if s.Guilty {
			guiltyCount++
			require.Equal(t, c.GuiltyName, s.Name)
		}
	}
	require.Equal(t, 1, guiltyCount)
}

func TestNormalize_guiltyResolutionOrder(t *testing.T) {
	tests := []struct {
		name       string
		characters map[string]any
		wantGuilty string
	}{
		{
			name: "explicit guilty_name wins",
			characters: map[string]any{
				"suspects": []any{
					map[string]any{"id": "s1", "name": "Ada Koval"},
					map[string]any{"id": "s2", "name": "Ben Ortiz"},
				},
				"guilty_name": "Ben Ortiz",
			},
			wantGuilty: "Ben Ortiz",
		},
		{
			name: "killer_id lookup",
			characters: map[string]any{
				"suspects": []any{
					map[string]any{"id": "s1", "name": "Ada Koval"},
					map[string]any{"id": "s2", "name": "Ben Ortiz"},
				},
				"killer_id": "s2",
			},
			wantGuilty: "Ben Ortiz",
		},
		{
			name: "numeric killer_id matches string id",
			characters: map[string]any{
				"suspects": []any{
					map[string]any{"id": "1", "name": "Ada Koval"},
					map[string]any{"id": "2", "name": "Ben Ortiz"},
				},
				"killer_id": float64(2),
			},
			wantGuilty: "Ben Ortiz",
		},
		{
			name: "guilty flag fallback",
			characters: map[string]any{
				"suspects": []any{
					map[string]any{"id": "s1", "name": "Ada Koval"},
					map[string]any{"id": "s2", "name": "Ben Ortiz", "guilty": true},
				},
			},
			wantGuilty: "Ben Ortiz",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, err := casegen.Normalize(nil, tt.characters)
			require.NoError(t, err)
			require.Equal(t, tt.wantGuilty, c.GuiltyName)
			for _, s := range c.Suspects {
				require.Equal(t, s.Name == tt.wantGuilty, s.Guilty, "suspect %s", s.Name)
			}
		})
	}
}

func TestNormalize_fatalPaths(t *testing.T) {
	tests := []struct {
		name       string
		characters map[string]any
	}{
		{
			name:       "nil characters",
			characters: nil,
		},
		{
			name:       "missing suspects",
			characters: map[string]any{"guilty_name": "Ada Koval"},
		},
		{
			name:       "suspects not a list",
			characters: map[string]any{"suspects": "Ada Koval"},
		},
		{
			name:       "empty suspects list",
			characters: map[string]any{"suspects": []any{}},
		},
		{
			name: "no resolvable guilty identity",
			characters: map[string]any{
				"suspects": []any{
					map[string]any{"id": "s1", "name": "Ada Koval"},
					map[string]any{"id": "s2", "name": "Ben Ortiz"},
				},
			},
		},
		{
			name: "guilty name not in roster",
			characters: map[string]any{
				"suspects": []any{
					map[string]any{"id": "s1", "name": "Ada Koval"},
				},
				"guilty_name": "Nobody Here",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, err := casegen.Normalize(nil, tt.characters)
			require.ErrorIs(t, err, casegen.ErrGeneration)
			require.Nil(t, c)
		})
	}
}

func TestNormalize_contradictoryGuiltWarns(t *testing.T) {
	characters := map[string]any{
		"suspects": []any{
			// Flagged guilty by id but guilty_name points elsewhere.
			map[string]any{"id": "s1", "name": "Ada Koval", "guilty": true},
			map[string]any{"id": "s2", "name": "Ben Ortiz"},
		},
		"guilty_name": "Ben Ortiz",
		"killer_id":   "s1",
	}

	c, warnings, err := casegen.Normalize(nil, characters)
	require.NoError(t, err)
	require.NotEmpty(t, warnings)

	// The invariant still holds: guilt is canonicalized to the resolved name.
	require.Equal(t, "Ben Ortiz", c.GuiltyName)
	for _, s := range c.Suspects {
		require.Equal(t, s.Name == "Ben Ortiz", s.Guilty, "suspect %s", s.Name)
	}
}

func TestNormalize_suspectFieldFallbacks(t *testing.T) {
	characters := map[string]any{
		"suspects": []any{
			map[string]any{
				"id":                "s1",
				"secret_motivation": "Gambling debts",
			},
			map[string]any{"id": "s2", "name": "Ben Ortiz"},
		},
		"killer_id": "s2",
	}

	c, _, err := casegen.Normalize(nil, characters)
	require.NoError(t, err)
	require.Equal(t, "Unknown Suspect", c.Suspects[0].Name)
	require.Equal(t, "Gambling debts", c.Suspects[0].Secret)
	require.Equal(t, "", c.Suspects[0].Role)
}
