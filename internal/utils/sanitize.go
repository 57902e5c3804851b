package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StripTagsPolicy()

// SanitizeText strips HTML from user-supplied titles, descriptions and
// comment bodies, decodes entities back to plain text and collapses
// whitespace runs.
func SanitizeText(s string) string {
	s = html.UnescapeString(s)
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}
