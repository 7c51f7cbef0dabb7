// internal/app/system/normalize/normalize.go

// Package normalize trims and sanitizes user-supplied input at the HTTP
// boundary, so stores and policies only ever see cleaned values.
package normalize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips all HTML. Group descriptions, rules, recipe text, and
// comments are plain text in this API.
var strict = bluemonday.StrictPolicy()

// Name collapses internal whitespace and trims the result.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Text trims whitespace and strips any HTML markup.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// TextSlice applies Text to each element, dropping entries that end up
// empty.
func TextSlice(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := Text(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// QueryParam trims a query-string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
