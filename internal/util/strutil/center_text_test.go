package strutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCenterText(t *testing.T) {
	testCases := []struct {
		name         string
		text         string
		desiredWidth int
		expected     string
	}{
		{
			name:         "Single Line, Even Padding",
			text:         "hello",
			desiredWidth: 11,
			expected:     "   hello   ",
		},
		{
			name:         "Single Line, Odd Padding",
			text:         "go",
			desiredWidth: 11,
			expected:     "    go     ",
		},
		{
			name:         "Single Line, No Padding Needed",
			text:         "exact fit",
			desiredWidth: 9,
			expected:     "exact fit",
		},
		{
			name:         "Single Line, Text Wider Than Width",
			text:         "this text is definitely too long",
			desiredWidth: 10,
			expected:     "this text is definitely too long",
		},
		{
			name:         "Empty String",
			text:         "",
			desiredWidth: 8,
			expected:     "        ",
		},
		{
			name:         "Multi-line, Even Line Lengths",
			text:         "line one\nline two",
			desiredWidth: 20,
			expected:     "      line one      \n      line two      ",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)
			actual := CenterText(tc.text, tc.desiredWidth)
			r.Equal(tc.expected, actual)
		})
	}
}
