// Package langcode validates ISO 639-1 language codes used as localization
// keys for company names and tags.
package langcode

import (
	"golang.org/x/text/language"
)

// IsValid reports whether code is a two-letter ISO 639-1 language code in
// its canonical lowercase form. Codes like "xx" are well-formed but not
// registered and are rejected.
func IsValid(code string) bool {
	if len(code) != 2 {
		return false
	}
	base, err := language.ParseBase(code)
	if err != nil {
		return false
	}
	return base.String() == code
}
