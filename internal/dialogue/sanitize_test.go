package dialogue_test

import (
	"github.com/myrjola/caseclosed/internal/dialogue"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain text untouched",
			text: "I was at my desk.",
			want: "I was at my desk.",
		},
		{
			name: "strips tags",
			text: "<div class=\"reply\">I was <b>not</b> there.</div>",
			want: "I was not there.",
		},
		{
			name: "unescapes entities before stripping",
			text: "Ada &amp; Ben &lt;argued&gt; loudly",
			want: "Ada & Ben loudly",
		},
		{
			name: "collapses whitespace",
			text: "  too \n\n many\t spaces  ",
			want: "too many spaces",
		},
		{
			name: "empty",
			text: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, dialogue.Clean(tt.text))
		})
	}
}
