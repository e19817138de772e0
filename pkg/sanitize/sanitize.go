// Package sanitize strips markup from free-text fields before they are stored or indexed.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes every HTML tag, unescapes entities and collapses whitespace.
func Text(s string) string {
	if s == "" {
		return s
	}
	clean := html.UnescapeString(policy.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

// Optional applies Text to a nullable field.
func Optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	return &v
}

// Email trims and lower-cases an address so lookups and the unique index
// treat Diop@uasz.sn and diop@uasz.sn as the same account.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
