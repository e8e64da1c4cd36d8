package service

import (
	"regexp"
	"strings"
)

// The bold pattern must run before the italic pattern so the single
// asterisks inside a ** pair are never matched on their own.
var (
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.*?)\*`)
)

// RenderMarkup converts the minimal inline markup used in assistant replies
// to HTML: **bold**, *italic*, and newlines to line breaks. It is a pure
// function of its input; rendering already-rendered text changes nothing.
func RenderMarkup(text string) string {
	out := boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	out = italicPattern.ReplaceAllString(out, "<em>$1</em>")
	return strings.ReplaceAll(out, "\n", "<br>")
}
