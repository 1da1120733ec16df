package dialogue

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Clean makes pipeline output safe for display: HTML entities are unescaped,
// tags stripped, and whitespace collapsed. The pipeline is not trusted to
// return plain text.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = html.UnescapeString(text)
	text = tagPattern.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}
