package extract_test

import (
	"github.com/myrjola/caseclosed/internal/extract"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  map[string]any
		found bool
	}{
		{
			name:  "plain JSON object",
			text:  `{"spoken_text": "I was in the server room."}`,
			want:  map[string]any{"spoken_text": "I was in the server room."},
			found: true,
		},
		{
			name:  "fenced JSON",
			text:  "```json\n{\"suspects\": []}\n```",
			want:  map[string]any{"suspects": []any{}},
			found: true,
		},
		{
			name:  "fence without language tag",
			text:  "```\n{\"a\": 1}\n```",
			want:  map[string]any{"a": float64(1)},
			found: true,
		},
		{
			name:  "thought trace before object",
			text:  "Thought: I should answer in JSON.\n{\"answer\": \"Nothing to hide.\"}",
			want:  map[string]any{"answer": "Nothing to hide."},
			found: true,
		},
		{
			name:  "trailing commentary after closing brace",
			text:  `{"text": "fine"} I hope this helps!`,
			want:  map[string]any{"text": "fine"},
			found: true,
		},
		{
			name:  "fenced object with surrounding commentary inside",
			text:  "```json\nHere you go:\n{\"x\": \"y\"}\n```",
			want:  map[string]any{"x": "y"},
			found: true,
		},
		{
			name:  "no structure found",
			text:  "Thought: I will now respond.",
			found: false,
		},
		{
			name:  "empty string",
			text:  "",
			found: false,
		},
		{
			name:  "whitespace only",
			text:  "   \n\t  ",
			found: false,
		},
		{
			name:  "unbalanced braces",
			text:  "{ this is not json",
			found: false,
		},
		{
			name:  "JSON array is not an object",
			text:  `[1, 2, 3]`,
			found: false,
		},
		{
			name:  "null literal",
			text:  "null",
			found: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := extract.JSONObject(tt.text)
			require.Equal(t, tt.found, found)
			if tt.found {
				require.Equal(t, tt.want, got)
			} else {
				require.Nil(t, got)
			}
		})
	}
}

func TestJSONObject_nestedObjects(t *testing.T) {
	text := "Thought: done.\n{\"outer\": {\"inner\": true}, \"n\": 2}"
	got, found := extract.JSONObject(text)
	require.True(t, found)
	require.Equal(t, map[string]any{
		"outer": map[string]any{"inner": true},
		"n":     float64(2),
	}, got)
}

func TestString(t *testing.T) {
	obj := map[string]any{
		"spoken_text": "  I already told you.  ",
		"empty":       "   ",
		"number":      42,
	}

	got, ok := extract.String(obj, "spoken_text", "answer")
	require.True(t, ok)
	require.Equal(t, "I already told you.", got)

	// First alias missing falls through to the next one.
	got, ok = extract.String(obj, "answer", "spoken_text")
	require.True(t, ok)
	require.Equal(t, "I already told you.", got)

	// Blank and non-string values do not count.
	_, ok = extract.String(obj, "empty", "number", "missing")
	require.False(t, ok)
}

func TestStrings(t *testing.T) {
	obj := map[string]any{
		"clues": []any{"a scorched cable", 7, "a cracked badge"},
		"str":   "not a list",
	}
	require.Equal(t, []string{"a scorched cable", "a cracked badge"}, extract.Strings(obj, "clues"))
	require.Nil(t, extract.Strings(obj, "str"))
	require.Nil(t, extract.Strings(obj, "missing"))
}
