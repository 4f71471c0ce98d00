package utils

import (
	"bytes"
	stdhtml "html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	sanitizer = bluemonday.UGCPolicy()
	stripper  = bluemonday.StrictPolicy()
	markdown  = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
)

// Sanitize cleans HTML content to prevent XSS attacks.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// RenderContent converts post content from markdown to sanitized HTML.
// Raw HTML in the source is escaped by goldmark and then filtered again.
func RenderContent(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return Sanitize(buf.String()), nil
}

// Excerpt returns at most max runes of content as plain text, followed by
// "..." when it had to cut. Whitespace runs collapse to single spaces.
func Excerpt(content string, max int) string {
	// StrictPolicy escapes entities; the excerpt is plain text, not HTML.
	text := strings.Join(strings.Fields(stdhtml.UnescapeString(stripper.Sanitize(content))), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:max]), " ") + "..."
}
