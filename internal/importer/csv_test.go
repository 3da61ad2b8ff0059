package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "a,b,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "quoted field containing separator",
			line: `"Doe, Jane",jane@example.com`,
			want: []string{"Doe, Jane", "jane@example.com"},
		},
		{
			name: "fields are trimmed",
			line: ` a , "b " ,c `,
			want: []string{"a", "b", "c"},
		},
		{
			name: "empty fields preserved",
			line: "a,,c,",
			want: []string{"a", "", "c", ""},
		},
		{
			name: "quote toggling mid-field",
			line: `val"ue,next`,
			want: []string{"value,next"},
		},
		{
			name: "unterminated quote is lenient",
			line: `"unclosed, rest`,
			want: []string{"unclosed, rest"},
		},
		{
			name: "single field",
			line: "only",
			want: []string{"only"},
		},
		{
			name: "empty line yields one empty field",
			line: "",
			want: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLine(tt.line))
		})
	}
}

func TestSplitLineFieldCount(t *testing.T) {
	// With balanced quotes, field count is unquoted separators plus one.
	line := `one,"two, still two",three,four`
	assert.Len(t, SplitLine(line), 4)
}

func TestSplitLines(t *testing.T) {
	t.Run("normalizes CRLF and strips BOM", func(t *testing.T) {
		lines := SplitLines("\ufeffa,b\r\nc,d\r\n")
		assert.Equal(t, []string{"a,b", "c,d"}, lines)
	})

	t.Run("keeps interior blank lines", func(t *testing.T) {
		lines := SplitLines("header\n\ndata\n")
		assert.Equal(t, []string{"header", "", "data"}, lines)
	})

	t.Run("drops trailing blank lines", func(t *testing.T) {
		lines := SplitLines("a\n\n\n")
		assert.Equal(t, []string{"a"}, lines)
	})
}
