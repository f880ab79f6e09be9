// Package sanitize cleans untrusted free text before it is persisted.
//
// Scalar display strings are stored the way the web client will render
// them: markup is removed and the remaining HTML-significant characters are
// escaped. List fields are not passed through here; they are stored as sent.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element and escapes what is left. A bluemonday
// Policy is safe for concurrent use once configured.
var strict = bluemonday.StrictPolicy()

// Text strips tags, escapes HTML-significant characters and trims
// surrounding whitespace.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strict.Sanitize(s))
}
