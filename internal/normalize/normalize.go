// Package normalize rewrites free-form mathematical text into the ASCII
// syntax understood by the expression parser.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// substitutions are applied in order. Each replacement is free of the runes
// it replaces, so running them twice changes nothing.
var substitutions = strings.NewReplacer(
	"^", "**",
	"×", "*",
	"÷", "/",
	":", "/",
	"√", "sqrt",
	"—", "-",
	"–", "-",
)

// spaceMapper folds every Unicode space (NBSP, thin space, ...) into ASCII space.
var spaceMapper = runes.Map(func(r rune) rune {
	if r != ' ' && unicode.IsSpace(r) && r != '\n' && r != '\t' {
		return ' '
	}
	return r
})

// Normalize applies the symbol substitutions and trims surrounding
// whitespace. It is total and idempotent.
func Normalize(text string) string {
	t := transform.Chain(norm.NFC, spaceMapper)
	folded, _, err := transform.String(t, text)
	if err != nil {
		// Invalid UTF-8 is passed through untouched.
		folded = text
	}
	return strings.TrimSpace(substitutions.Replace(folded))
}

// Lower returns the normalized, lowercased form used for keyword checks.
func Lower(text string) string {
	return strings.ToLower(Normalize(text))
}
