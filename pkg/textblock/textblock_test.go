package textblock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		in   string
		want Line
	}{
		{"* item", Line{Level: 0, Bullet: true, Text: "item"}},
		{"    * item", Line{Level: 1, Bullet: true, Text: "item"}},
		{"        • deep", Line{Level: 2, Bullet: true, Text: "deep"}},
		{"plain", Line{Level: 0, Text: "plain"}},
		{"    indented", Line{Level: 1, Text: "indented"}},
		{"   three spaces", Line{Level: 0, Text: "   three spaces"}},
		{"      * six", Line{Level: 1, Text: "  * six"}},
		{"*no space", Line{Level: 0, Text: "*no space"}},
		{"*  two spaces", Line{Level: 0, Bullet: true, Text: " two spaces"}},
		{"- dash", Line{Level: 0, Text: "- dash"}},
		{"\t* tab", Line{Level: 0, Text: "\t* tab"}},
		{"", Line{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.in))
		})
	}
}

func TestParseKeepsEveryLine(t *testing.T) {
	b := Parse("intro\n\n* a\n    * b\r\nend")
	require.Len(t, b, 5)
	assert.Equal(t, Line{}, b[1])
	assert.Equal(t, Line{Level: 1, Bullet: true, Text: "b"}, b[3])
	assert.Equal(t, 2, b.Bullets())
}

func TestLevelIsFloorOfIndentOverFour(t *testing.T) {
	for spaces := 0; spaces < 20; spaces++ {
		line := strings.Repeat(" ", spaces) + "text"
		got := ParseLine(line)
		assert.Equal(t, spaces/4, got.Level, "spaces=%d", spaces)
		assert.False(t, got.Bullet)
		assert.Equal(t, strings.Repeat(" ", spaces%4)+"text", got.Text)
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(" \n\t "))
	assert.False(t, IsBlank(" x "))
}
