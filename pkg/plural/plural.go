// Package plural picks the plural marker rendered by the `$` special name.
package plural

import (
	"fmt"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// Pluralizer returns the marker appended to a noun describing n things.
type Pluralizer interface {
	Suffix(n int) string
}

// Func adapts a function into a Pluralizer.
type Func func(n int) string

// Suffix delegates to the underlying function.
func (fn Func) Suffix(n int) string {
	return fn(n)
}

// Rules selects the suffix using CLDR cardinal rules for a language: counts
// in the "one" category get no marker, every other category gets Marker.
type Rules struct {
	Tag    language.Tag
	Marker string
}

// New returns cardinal rules for tag using marker for non-singular counts.
func New(tag language.Tag, marker string) *Rules {
	return &Rules{Tag: tag, Marker: marker}
}

// ForLocale parses a BCP 47 locale such as "en-US".
func ForLocale(locale, marker string) (*Rules, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return New(language.English, marker), nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("plural: parse locale %q: %w", locale, err)
	}
	return New(tag, marker), nil
}

// Suffix implements Pluralizer.
func (r *Rules) Suffix(n int) string {
	if r == nil {
		return English.Suffix(n)
	}
	if n < 0 {
		n = -n
	}
	if plural.Cardinal.MatchPlural(r.Tag, n, 0, 0, 0, 0) == plural.One {
		return ""
	}
	return r.Marker
}

// English is the default: "" for exactly one, "s" otherwise (including zero).
var English Pluralizer = New(language.English, "s")

// FormOf returns the naive plural form of word.
func FormOf(word string) string {
	return word + English.Suffix(2)
}
