package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script tag",
			input: "Go To Statement Considered Harmful",
			want:  "Go To Statement Considered Harmful",
		},
		{
			name:  "script tag",
			input: "<script>alert('Hello, World!');</script>",
			want:  "",
		},
		{
			name:  "script tag inside title",
			input: "Type <SCRIPT SRC=\"evil.js\"></SCRIPT>wars",
			want:  "Type wars",
		},
		{
			name:  "multiline script",
			input: "  React patterns <script>\nalert(1)\n</script>  ",
			want:  "React patterns",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeText(tc.input))
		})
	}
}
