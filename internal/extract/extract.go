// Package extract pulls JSON objects out of noisy text-generation output.
//
// Generated text is unreliable: the JSON we asked for may be wrapped in code
// fences, preceded by thought-traces like "Thought: ...", or followed by
// trailing commentary, in any combination. The extractor is maximally
// permissive and never fails on malformed input; a miss is an expected
// outcome, not an error.
package extract

import (
	"encoding/json"
	"strings"
)

const fenceMarker = "```"

// JSONObject extracts the first JSON object found in text.
//
// Candidates are tried in order, first parse wins:
//  1. if the trimmed text starts with a code fence, the content between the
//     first and last fence lines,
//  2. the substring from the first '{' to the last '}' of the remaining
//     candidate text.
//
// The second return value reports whether an object was found.
func JSONObject(text string) (map[string]any, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	if strings.HasPrefix(text, fenceMarker) {
		candidate := stripFences(text)
		if obj, ok := parseObject(candidate); ok {
			return obj, true
		}
		// The fenced content was not valid JSON on its own. Keep the
		// fence-stripped text as the candidate for the brace scan below.
		text = candidate
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		if obj, ok := parseObject(text[start : end+1]); ok {
			return obj, true
		}
	}

	return nil, false
}

// stripFences removes the first and last lines when they start with a code
// fence marker, e.g. "```json" and "```".
func stripFences(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], fenceMarker) {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(lines[len(lines)-1], fenceMarker) {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func parseObject(candidate string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, false
	}
	if obj == nil {
		return nil, false
	}
	return obj, true
}

// String reads a non-empty string value from obj, trying keys in order.
// It is the lookup used for alias-tolerant fields such as the spoken-text
// field of dialogue output.
func String(obj map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := obj[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

// Strings reads a list of strings from obj under key. Non-string elements
// are skipped.
func Strings(obj map[string]any, key string) []string {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
