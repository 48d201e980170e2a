// Package tokenize provides the small set of project-source tokenizers the
// core induction package expects its callers to supply. It deliberately
// knows nothing about grammars, MDL, or emergence; it only turns raw text
// into a slice of token strings.
package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Whitespace splits text on runs of Unicode whitespace, discarding empty
// fields. This is the default tokenizer for line- and prose-oriented input.
func Whitespace(text string) []string {
	return strings.FieldsFunc(text, unicode.IsSpace)
}

// Character splits text into one token per rune, preserving order. Useful
// for alphabet-level induction where "words" are not meaningful units.
func Character(text string) []string {
	runes := []rune(text)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

// Fold returns a copy of tokens with each one case-folded to lower case
// using Unicode casing rules, so that e.g. "The" and "the" induce as the
// same terminal symbol. Callers apply this themselves after tokenizing;
// it is not a tokenizer in its own right.
func Fold(tokens []string) []string {
	caser := cases.Lower(language.Und)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = caser.String(t)
	}
	return out
}
