// Package htmlsanitize cleans recruiter-authored HTML (job descriptions)
// before it is stored and served to clients.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc   = bluemonday.UGCPolicy()
	plain = bluemonday.StrictPolicy()
)

// Sanitize keeps safe formatting (paragraphs, lists, links, emphasis) and
// strips scripts, event handlers, and javascript: URLs.
func Sanitize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// PlainText strips all markup, for single-line fields such as job titles.
func PlainText(s string) string {
	return strings.TrimSpace(plain.Sanitize(s))
}
