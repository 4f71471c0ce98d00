package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderContent(t *testing.T) {
	out, err := RenderContent("first line\nsecond line\n\n**bold** paragraph")
	require.NoError(t, err)
	assert.Contains(t, out, "first line<br")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Equal(t, 2, strings.Count(out, "<p>"))
}

func TestRenderContentStripsScripts(t *testing.T) {
	out, err := RenderContent(`hello <script>alert(1)</script> [x](javascript:alert(1))`)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "hello")
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		max     int
		want    string
	}{
		{"short text unchanged", "World", 150, "World"},
		{"collapses whitespace", "a\n\n b\tc", 150, "a b c"},
		{"truncates with ellipsis", "abcdef ghij", 7, "abcdef..."},
		{"counts runes", "héllo wörld", 5, "héllo..."},
		{"strips markup", "<b>It's</b> fine", 150, "It's fine"},
		{"non-positive max keeps all", "abc", 0, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Excerpt(tt.content, tt.max))
		})
	}
}
